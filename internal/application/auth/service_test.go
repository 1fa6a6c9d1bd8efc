package auth

import (
	"context"
	"testing"

	"agricycle-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupAuthTest(t *testing.T) *Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return &Service{DB: db, Tokens: &TokenService{Secret: []byte("test-secret")}}
}

func userCount(t *testing.T, db *gorm.DB) int64 {
	var n int64
	require.NoError(t, db.Model(&models.User{}).Count(&n).Error)
	return n
}

func validRegister() RegisterInput {
	return RegisterInput{
		Name:     "Asha Raman",
		Email:    "asha@example.com",
		Password: "secret1",
		Role:     "farmer",
		Phone:    "555-0101",
	}
}

func TestRegister_MissingFields(t *testing.T) {
	svc := setupAuthTest(t)

	cases := []func(*RegisterInput){
		func(in *RegisterInput) { in.Name = "" },
		func(in *RegisterInput) { in.Email = "" },
		func(in *RegisterInput) { in.Password = "" },
		func(in *RegisterInput) { in.Role = "" },
	}
	for _, mutate := range cases {
		in := validRegister()
		mutate(&in)
		_, err := svc.Register(context.Background(), in)
		assert.ErrorIs(t, err, ErrMissingFields)
	}
	assert.Equal(t, int64(0), userCount(t, svc.DB))
}

func TestRegister_AdminRejected(t *testing.T) {
	svc := setupAuthTest(t)

	in := validRegister()
	in.Role = "admin"
	_, err := svc.Register(context.Background(), in)
	assert.ErrorIs(t, err, ErrAdminRegistration)
	assert.Equal(t, int64(0), userCount(t, svc.DB))
}

func TestRegister_UnknownRole(t *testing.T) {
	svc := setupAuthTest(t)

	in := validRegister()
	in.Role = "driver"
	_, err := svc.Register(context.Background(), in)
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestRegister_InvalidEmail(t *testing.T) {
	svc := setupAuthTest(t)

	for _, email := range []string{"plainaddress", "no@tld", "spa ce@example.com"} {
		in := validRegister()
		in.Email = email
		_, err := svc.Register(context.Background(), in)
		assert.ErrorIs(t, err, ErrInvalidEmailFormat, email)
	}
}

func TestRegister_ShortPassword(t *testing.T) {
	svc := setupAuthTest(t)

	in := validRegister()
	in.Password = "12345"
	_, err := svc.Register(context.Background(), in)
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestRegister_Success(t *testing.T) {
	svc := setupAuthTest(t)

	in := validRegister()
	in.Email = "Asha@Example.COM"
	user, err := svc.Register(context.Background(), in)
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "farmer", user.Role)
	assert.Equal(t, "asha@example.com", user.Email)
	// Plaintext never stored; digest verifies.
	assert.NotEqual(t, in.Password, user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)))
	assert.Equal(t, int64(1), userCount(t, svc.DB))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := setupAuthTest(t)

	_, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), validRegister())
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Equal(t, int64(1), userCount(t, svc.DB))
}

func TestLogin_MissingFields(t *testing.T) {
	svc := setupAuthTest(t)

	_, err := svc.Login(context.Background(), "", "secret1")
	assert.ErrorIs(t, err, ErrEmailPasswordRequired)
	_, err = svc.Login(context.Background(), "asha@example.com", "")
	assert.ErrorIs(t, err, ErrEmailPasswordRequired)
}

func TestLogin_NonEnumerable(t *testing.T) {
	svc := setupAuthTest(t)
	_, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	// Wrong password and unknown email must be indistinguishable.
	_, errWrongPass := svc.Login(context.Background(), "asha@example.com", "wrong-pass")
	_, errNoUser := svc.Login(context.Background(), "nobody@example.com", "secret1")
	assert.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
	assert.ErrorIs(t, errNoUser, ErrInvalidCredentials)
}

func TestLogin_Success(t *testing.T) {
	svc := setupAuthTest(t)
	created, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	user, err := svc.Login(context.Background(), "asha@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.Equal(t, created.Role, user.Role)
}

func TestGetSelf(t *testing.T) {
	svc := setupAuthTest(t)
	created, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	user, err := svc.GetSelf(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, user.Email)

	_, err = svc.GetSelf(context.Background(), created.ID+99)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
