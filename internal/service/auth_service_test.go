package service

import (
	"testing"
	"time"

	"learnlocal_backend/internal/config"
	"learnlocal_backend/internal/model"
	"learnlocal_backend/internal/repository"
	"learnlocal_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(env *testEnv) *AuthService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = 72 * time.Hour
	return NewAuthService(repository.NewUserRepository(env.db), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)

	user := &model.User{Username: "grace", Email: "grace@example.com", Password: "hopper1"}
	require.NoError(t, auth.Register(user))
	assert.NotEqual(t, "hopper1", user.Password, "password must be stored hashed")

	token, err := auth.Login("grace", "hopper1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := util.ParseJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestRegisterDuplicate(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)

	require.NoError(t, auth.Register(&model.User{
		Username: "grace", Email: "grace@example.com", Password: "hopper1",
	}))

	err := auth.Register(&model.User{
		Username: "grace2", Email: "grace@example.com", Password: "hopper1",
	})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)

	err = auth.Register(&model.User{
		Username: "grace", Email: "other@example.com", Password: "hopper1",
	})
	assert.ErrorIs(t, err, util.ErrUsernameTaken)
}

func TestLoginInvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)

	require.NoError(t, auth.Register(&model.User{
		Username: "grace", Email: "grace@example.com", Password: "hopper1",
	}))

	_, err := auth.Login("grace", "wrong")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, err = auth.Login("nobody", "hopper1")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}
