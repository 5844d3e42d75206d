package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gin-gorm-shop/internal/core/auth"
	"gin-gorm-shop/internal/domain"
)

func newAuth(t *testing.T) (*AuthService, *auth.JWTer, *fixture) {
	t.Helper()
	f := newFixture(t)
	j := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "shop-test", TTL: 15 * time.Minute, RefreshTTL: 7 * 24 * time.Hour}
	_, err := f.users.Create(context.Background(), CreateUserInput{Name: "Ana", Email: "ana@example.com", Password: "senha123"})
	require.NoError(t, err)
	return NewAuthService(f.users, j), j, f
}

func TestAuthService_SignIn(t *testing.T) {
	svc, j, _ := newAuth(t)
	ctx := context.Background()

	pair, err := svc.SignIn(ctx, "ana@example.com", "senha123")
	require.NoError(t, err)

	c, err := j.Parse(pair.AccessToken, auth.TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", c.Email)
	_, err = j.Parse(pair.RefreshToken, auth.TypeRefresh)
	require.NoError(t, err)
}

func TestAuthService_SignInFailuresLookAlike(t *testing.T) {
	svc, _, _ := newAuth(t)
	ctx := context.Background()

	_, wrongPw := svc.SignIn(ctx, "ana@example.com", "errada")
	_, noUser := svc.SignIn(ctx, "ghost@example.com", "senha123")

	require.ErrorIs(t, wrongPw, domain.ErrUnauthorized)
	require.ErrorIs(t, noUser, domain.ErrUnauthorized)
	assert.Equal(t, wrongPw.Error(), noUser.Error())
}

func TestAuthService_Refresh(t *testing.T) {
	svc, j, _ := newAuth(t)
	ctx := context.Background()

	pair, err := svc.SignIn(ctx, "ana@example.com", "senha123")
	require.NoError(t, err)

	next, err := svc.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	c, err := j.Parse(next.AccessToken, auth.TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", c.Email)

	_, err = svc.Refresh(pair.AccessToken)
	require.ErrorIs(t, err, domain.ErrUnauthorized, "access token is not a refresh token")

	_, err = svc.Refresh("garbage")
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_RefreshExpired(t *testing.T) {
	svc, j, _ := newAuth(t)

	expired := *j
	expired.RefreshTTL = -time.Minute
	tok, err := expired.Issue("u-1", "ana@example.com", auth.TypeRefresh)
	require.NoError(t, err)

	_, err = svc.Refresh(tok)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Contains(t, err.Error(), "invalid refresh token")
}
