package service

import (
	"context"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/config"
	"github.com/spec-kit/marketplace-service/internal/domain"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

const authTestSecret = "auth-service-test-secret"

func newTestAuthService(users *fakeUserRepo) *AuthService {
	cfg := config.Config{Auth: config.AuthConfig{
		JWTSecret:              authTestSecret,
		AccessTokenTTLMinutes:  15,
		RefreshTokenTTLMinutes: 7 * 24 * 60,
		BcryptCost:             bcrypt.MinCost,
	}}
	return NewAuthService(cfg, users, zap.NewNop())
}

func requireDomainStatus(t *testing.T, err error, status int) *apperrors.DomainError {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, status, domainErr.HTTPStatus)
	return domainErr
}

func TestRegisterAndLogin(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)
	require.Equal(t, domain.RoleUser, user.Role)
	require.NotEmpty(t, user.ID)
	require.NotEqual(t, "password123", user.PasswordHash)

	pair, err := svc.Login(ctx, "alice", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.Equal(t, int64((15 * time.Minute).Seconds()), pair.ExpiresIn)

	claims, err := svc.TokenManager().ParseKind(pair.AccessToken, auth.TokenKindAccess)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, domain.RoleUser, claims.Role)
}

func TestRegisterValidation(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users)
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "a@example.com", "password123")
	requireDomainStatus(t, err, 400)

	_, err = svc.Register(ctx, "alice", "a@example.com", "short")
	requireDomainStatus(t, err, 400)

	_, err = svc.Register(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "other@example.com", "password123")
	requireDomainStatus(t, err, 400)

	_, err = svc.Register(ctx, "alice2", "alice@example.com", "password123")
	requireDomainStatus(t, err, 400)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, unknownErr := svc.Login(ctx, "nobody", "password123")
	unknown := requireDomainStatus(t, unknownErr, 401)

	_, wrongErr := svc.Login(ctx, "alice", "wrong-password")
	wrong := requireDomainStatus(t, wrongErr, 401)

	// Neither failure mode may leak whether the username exists.
	require.Equal(t, unknown.Message, wrong.Message)
	require.Equal(t, unknown.Code, wrong.Code)
}

func TestRefreshRotatesPairAndReresolvesRole(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)

	pair, err := svc.Login(ctx, "alice", "password123")
	require.NoError(t, err)

	// Promote after the pair was issued. The rotated access token must
	// carry the current role, not the one from login time.
	promoted := *users.users[user.ID]
	promoted.Role = domain.RoleAdmin
	require.NoError(t, users.Update(ctx, &promoted))

	rotated, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, rotated.AccessToken)
	require.NotEmpty(t, rotated.RefreshToken)

	claims, err := svc.TokenManager().ParseKind(rotated.AccessToken, auth.TokenKindAccess)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)
	pair, err := svc.Login(ctx, "alice", "password123")
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, pair.AccessToken)
	requireDomainStatus(t, err, 401)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())

	_, err := svc.Refresh(context.Background(), "not-a-token")
	requireDomainStatus(t, err, 401)
}

func TestRefreshRejectsExpiredToken(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":      user.ID,
		"username": user.Username,
		"kind":     string(auth.TokenKindRefresh),
		"exp":      time.Now().Add(-time.Minute).Unix(),
	}).SignedString([]byte(authTestSecret))
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, expired)
	requireDomainStatus(t, err, 401)
}

func TestRefreshRejectsDeletedUser(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)
	pair, err := svc.Login(ctx, "alice", "password123")
	require.NoError(t, err)

	require.NoError(t, users.Delete(ctx, user.ID))

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	requireDomainStatus(t, err, 401)
}
