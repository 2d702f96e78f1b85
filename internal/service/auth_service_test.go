package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/kiruthick103/studenthub-api/internal/dto"
	"github.com/kiruthick103/studenthub-api/internal/models"
	"github.com/kiruthick103/studenthub-api/internal/repository"
)

func newAuthService(t *testing.T, name string) AuthService {
	t.Helper()

	db := openTestDB(t, name)
	return NewAuthService(repository.NewUserRepository(db), testValidator(), "test-secret", time.Hour, zerolog.Nop())
}

func TestAuthServiceRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t, "authflow")
	ctx := context.Background()

	registered, err := svc.RegisterTeacher(ctx, dto.RegisterRequest{
		Email:    "Teacher@Example.com",
		Password: "sup3rsecret",
		FullName: "Priya Raman",
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleTeacher, registered.User.Role)
	require.Equal(t, "teacher@example.com", registered.User.Email)
	require.NotEmpty(t, registered.Token)

	token, err := jwt.Parse(registered.Token, func(token *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, models.RoleTeacher, claims["role"])

	loggedIn, err := svc.Login(ctx, dto.LoginRequest{Email: "teacher@example.com", Password: "sup3rsecret"})
	require.NoError(t, err)
	require.Equal(t, registered.User.ID, loggedIn.User.ID)
}

func TestAuthServiceRejectsBadCredentials(t *testing.T) {
	svc := newAuthService(t, "authbad")
	ctx := context.Background()

	_, err := svc.RegisterTeacher(ctx, dto.RegisterRequest{
		Email:    "teacher@example.com",
		Password: "sup3rsecret",
		FullName: "Priya Raman",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "teacher@example.com", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.RegisterTeacher(ctx, dto.RegisterRequest{
		Email:    "teacher@example.com",
		Password: "another",
		FullName: "Someone Else",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthServiceRejectsDisabledAccount(t *testing.T) {
	db := openTestDB(t, "authdisabled")
	users := repository.NewUserRepository(db)
	svc := NewAuthService(users, testValidator(), "test-secret", time.Hour, zerolog.Nop())
	ctx := context.Background()

	registered, err := svc.RegisterTeacher(ctx, dto.RegisterRequest{
		Email:    "teacher@example.com",
		Password: "sup3rsecret",
		FullName: "Priya Raman",
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.User{}).Where("id = ?", registered.User.ID).Update("is_active", false).Error)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "teacher@example.com", Password: "sup3rsecret"})
	require.ErrorIs(t, err, ErrAccountDisabled)
}
