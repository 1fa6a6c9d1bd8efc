package health

import (
	"context"

	"agricycle-backend/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// DBPinger is optional for the health check. Nil reports not_configured.
type DBPinger interface {
	Ping() error
}

// Service reports dependency status and request counters for /health.
type Service struct {
	DB  DBPinger
	Rdb *redis.Client
}

// Result is the /health JSON payload.
type Result struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies"`
	Requests     RequestCounters   `json:"requests"`
}

// RequestCounters are the Redis-backed totals from the marker middleware.
type RequestCounters struct {
	Total  int64 `json:"total"`
	Errors int64 `json:"errors"`
}

// Collect pings each dependency and reads the request counters.
func (s *Service) Collect(ctx context.Context) Result {
	deps := map[string]string{
		"database": "not_configured",
		"redis":    "not_configured",
	}
	status := "ok"

	if s.DB != nil {
		if err := s.DB.Ping(); err != nil {
			deps["database"] = "disconnected"
			status = "degraded"
		} else {
			deps["database"] = "connected"
		}
	}

	var counters RequestCounters
	if s.Rdb != nil {
		if err := s.Rdb.Ping(ctx).Err(); err != nil {
			deps["redis"] = "disconnected"
			status = "degraded"
		} else {
			deps["redis"] = "connected"
			counters.Total, _ = s.Rdb.Get(ctx, middleware.KeyReqTotal).Int64()
			counters.Errors, _ = s.Rdb.Get(ctx, middleware.KeyReqErrors).Int64()
		}
	}

	return Result{Status: status, Dependencies: deps, Requests: counters}
}
