package auth

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/stockmaster-api/pkg/jwt"
)

const testSecret = "auth-usecase-test-secret"

func newUseCase() (*AuthUseCase, *memory.Store) {
	store := memory.NewStore()
	uc := NewAuthUseCase(store.Users(), JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "test"}, zerolog.Nop())
	return uc, store
}

func TestRegister_LowercasesEmailAndDefaultsToManager(t *testing.T) {
	uc, _ := newUseCase()

	res, err := uc.Register(context.Background(), dto.RegisterRequest{
		FullName: "Ana Ruiz", Email: "Ana@Example.COM", Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", res.User.Email)
	assert.Equal(t, entity.RoleManager, res.User.Role)

	userID, role, err := pkgjwt.Parse(testSecret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, userID)
	assert.Equal(t, entity.RoleManager, role)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{FullName: "A", Email: "a@b.io", Password: "password123"})
	require.NoError(t, err)
	_, err = uc.Register(ctx, dto.RegisterRequest{FullName: "B", Email: "A@B.io", Password: "password456"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	_, err := uc.Register(ctx, dto.RegisterRequest{FullName: "A", Email: "a@b.io", Password: "password123"})
	require.NoError(t, err)

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "A@B.IO", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.NotNil(t, res.User.LastLogin)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.io", Password: "wrong-password"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nobody@b.io", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSeedAdmin_Idempotent(t *testing.T) {
	uc, store := newUseCase()
	ctx := context.Background()

	created, err := uc.SeedAdmin(ctx, "Admin User", "Boss@StockMaster.io", "changeme123")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = uc.SeedAdmin(ctx, "Admin User", "boss@stockmaster.io", "changeme123")
	require.NoError(t, err)
	assert.False(t, created)

	u, err := store.Users().GetByEmail(ctx, "boss@stockmaster.io")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, entity.RoleAdmin, u.Role)
}
