package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/impcorecl/ticketeraimpactualizada/internal/config"
	"github.com/impcorecl/ticketeraimpactualizada/internal/domain"
	"github.com/impcorecl/ticketeraimpactualizada/internal/repository/memstore"
	apperrors "github.com/impcorecl/ticketeraimpactualizada/pkg/util"
)

func newAuthService(t *testing.T) (*AuthService, *memstore.Store) {
	t.Helper()
	store := memstore.NewStore()
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 10,
			BcryptCost:            4,
		},
	}
	return NewAuthService(cfg, store.Users()), store
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "puerta1", "puerta1@impcore.cl", "secreta123", domain.RoleScanner)
	require.NoError(t, err)

	user, token, expiresAt, err := svc.Login(ctx, "puerta1", "secreta123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Equal(t, domain.RoleScanner, user.Role)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleScanner, claims.Role)
}

func TestLoginFailuresAreUniform(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "puerta1", "puerta1@impcore.cl", "secreta123", domain.RoleScanner)
	require.NoError(t, err)

	// Wrong password and unknown user produce the same error.
	_, _, _, badPass := svc.Login(ctx, "puerta1", "wrong")
	_, _, _, badUser := svc.Login(ctx, "nadie", "secreta123")
	require.Error(t, badPass)
	require.Error(t, badUser)
	assert.Equal(t, apperrors.ToDomainError(badPass).Message, apperrors.ToDomainError(badUser).Message)
	assert.Equal(t, 401, apperrors.ToDomainError(badPass).HTTPStatus)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "caja1", "caja1@impcore.cl", "secreta123", domain.RoleSeller)
	require.NoError(t, err)

	_, err = svc.Register(ctx, "caja1", "otra@impcore.cl", "secreta123", domain.RoleSeller)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
}

func TestRegisterConcurrentSameUsername(t *testing.T) {
	svc, store := newAuthService(t)
	ctx := context.Background()

	const workers = 16
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Register(ctx, "caja1", "caja1@impcore.cl", "secreta123", domain.RoleSeller)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var created, conflicts int
	for err := range errs {
		if err == nil {
			created++
			continue
		}
		conflicts++
		assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, workers-1, conflicts)

	// Only one account must exist afterwards.
	user, err := store.Users().GetByUsername(ctx, "caja1")
	require.NoError(t, err)
	assert.Equal(t, "caja1", user.Username)
}
