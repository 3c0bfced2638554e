package service

import (
	"context"
	"testing"

	"github.com/noteledger/note-ledger-service/internal/dto"
	"github.com/noteledger/note-ledger-service/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.userSvc.Register(ctx, &dto.UserCreateRequest{
		Email:           "alice@example.com",
		Username:        "alice",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.UID)
	assert.NotEmpty(t, user.Token)

	// 邮箱或用户名均可作为登录凭证
	byEmail, err := env.userSvc.Login(ctx, &dto.UserLoginRequest{
		Credentials: "alice@example.com", Password: "secret123",
	}, "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, user.UID, byEmail.UID)
	assert.NotEmpty(t, byEmail.Token)

	byName, err := env.userSvc.Login(ctx, &dto.UserLoginRequest{
		Credentials: "alice", Password: "secret123",
	}, "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, user.UID, byName.UID)

	// 密码错误和用户不存在返回同一个错误，不暴露用户是否存在
	_, err = env.userSvc.Login(ctx, &dto.UserLoginRequest{
		Credentials: "alice", Password: "wrong",
	}, "127.0.0.1")
	assert.ErrorIs(t, err, code.ErrorUserPasswordIncorrect)
	_, err = env.userSvc.Login(ctx, &dto.UserLoginRequest{
		Credentials: "nobody", Password: "secret123",
	}, "127.0.0.1")
	assert.ErrorIs(t, err, code.ErrorUserPasswordIncorrect)
}

func TestUserRegisterValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.userSvc.Register(ctx, &dto.UserCreateRequest{
		Email: "a@example.com", Username: "no spaces", Password: "p1234567", ConfirmPassword: "p1234567",
	})
	assert.ErrorIs(t, err, code.ErrorUserUsernameNotValid)

	_, err = env.userSvc.Register(ctx, &dto.UserCreateRequest{
		Email: "a@example.com", Username: "alice", Password: "p1234567", ConfirmPassword: "different",
	})
	assert.ErrorIs(t, err, code.ErrorUserPasswordNotMatch)

	_, err = env.userSvc.Register(ctx, &dto.UserCreateRequest{
		Email: "a@example.com", Username: "alice", Password: "p1234567", ConfirmPassword: "p1234567",
	})
	require.NoError(t, err)

	// 邮箱与用户名均不可重复
	_, err = env.userSvc.Register(ctx, &dto.UserCreateRequest{
		Email: "a@example.com", Username: "alice2", Password: "p1234567", ConfirmPassword: "p1234567",
	})
	assert.ErrorIs(t, err, code.ErrorUserEmailAlreadyExists)
	_, err = env.userSvc.Register(ctx, &dto.UserCreateRequest{
		Email: "b@example.com", Username: "alice", Password: "p1234567", ConfirmPassword: "p1234567",
	})
	assert.ErrorIs(t, err, code.ErrorUserAlreadyExists)
}

func TestUserRegisterDisabled(t *testing.T) {
	env := newTestEnv(t)

	disabled := NewUserService(env.userRepo, nil, nil, &ServiceConfig{
		User: UserServiceConfig{RegisterIsEnable: false},
	})
	_, err := disabled.Register(context.Background(), &dto.UserCreateRequest{
		Email: "a@example.com", Username: "alice", Password: "p1234567", ConfirmPassword: "p1234567",
	})
	assert.ErrorIs(t, err, code.ErrorUserRegisterIsDisable)
}

func TestUserChangePassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.userSvc.Register(ctx, &dto.UserCreateRequest{
		Email:           "alice@example.com",
		Username:        "alice",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})
	require.NoError(t, err)

	err = env.userSvc.ChangePassword(ctx, user.UID, &dto.UserChangePasswordRequest{
		OldPassword: "wrong", Password: "newpass1", ConfirmPassword: "newpass1",
	})
	assert.ErrorIs(t, err, code.ErrorUserPasswordIncorrect)

	err = env.userSvc.ChangePassword(ctx, user.UID, &dto.UserChangePasswordRequest{
		OldPassword: "secret123", Password: "newpass1", ConfirmPassword: "newpass1",
	})
	require.NoError(t, err)

	// 旧密码失效，新密码生效
	_, err = env.userSvc.Login(ctx, &dto.UserLoginRequest{
		Credentials: "alice", Password: "secret123",
	}, "")
	assert.ErrorIs(t, err, code.ErrorUserPasswordIncorrect)
	_, err = env.userSvc.Login(ctx, &dto.UserLoginRequest{
		Credentials: "alice", Password: "newpass1",
	}, "")
	require.NoError(t, err)

	info, err := env.userSvc.GetInfo(ctx, user.UID)
	require.NoError(t, err)
	assert.Equal(t, "alice", info.Username)
	assert.Empty(t, info.Token)

	_, err = env.userSvc.GetInfo(ctx, 99999)
	assert.ErrorIs(t, err, code.ErrorUserNotFound)
}
