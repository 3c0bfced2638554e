package service

import (
	"context"
	"testing"

	"github.com/noteledger/note-ledger-service/internal/dto"
	"github.com/noteledger/note-ledger-service/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareUpsertIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustCreateUser(t, "owner")
	target := env.mustCreateUser(t, "target")

	note, err := env.noteSvc.Create(ctx, owner, &dto.NoteCreateRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	first, err := env.shareSvc.Share(ctx, owner, note.ID, &dto.ShareUpsertRequest{
		SharedUID: target, Permission: "read",
	})
	require.NoError(t, err)
	assert.Equal(t, "read", first.Permission)

	// 重复共享更新授权类型而不是新增记录
	second, err := env.shareSvc.Share(ctx, owner, note.ID, &dto.ShareUpsertRequest{
		SharedUID: target, Permission: "edit",
	})
	require.NoError(t, err)
	assert.Equal(t, "edit", second.Permission)
	assert.Equal(t, first.ID, second.ID)

	shares, err := env.shareSvc.List(ctx, owner, note.ID)
	require.NoError(t, err)
	require.Len(t, shares, 1)
	assert.Equal(t, "edit", shares[0].Permission)

	// 升级后立即生效
	_, err = env.noteSvc.Update(ctx, target, note.ID, &dto.NoteUpdateRequest{
		Title: "t", Content: "edited", ExpectedVersion: 1,
	})
	require.NoError(t, err)
}

func TestShareRejectsSelfAndInvalidTargets(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustCreateUser(t, "owner")

	note, err := env.noteSvc.Create(ctx, owner, &dto.NoteCreateRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	// 不能共享给自己
	_, err = env.shareSvc.Share(ctx, owner, note.ID, &dto.ShareUpsertRequest{
		SharedUID: owner, Permission: "read",
	})
	assert.ErrorIs(t, err, code.ErrorShareSelf)

	// 目标用户必须存在
	_, err = env.shareSvc.Share(ctx, owner, note.ID, &dto.ShareUpsertRequest{
		SharedUID: 99999, Permission: "read",
	})
	assert.ErrorIs(t, err, code.ErrorUserNotFound)

	// 授权类型必须合法
	target := env.mustCreateUser(t, "target")
	_, err = env.shareSvc.Share(ctx, owner, note.ID, &dto.ShareUpsertRequest{
		SharedUID: target, Permission: "admin",
	})
	assert.ErrorIs(t, err, code.ErrorShareInvalidPermission)
}

func TestShareOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustCreateUser(t, "owner")
	editor := env.mustCreateUser(t, "editor")
	stranger := env.mustCreateUser(t, "stranger")
	target := env.mustCreateUser(t, "target")

	note, err := env.noteSvc.Create(ctx, owner, &dto.NoteCreateRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	_, err = env.shareSvc.Share(ctx, owner, note.ID, &dto.ShareUpsertRequest{
		SharedUID: editor, Permission: "edit",
	})
	require.NoError(t, err)

	// 可写用户不能再授权给别人
	_, err = env.shareSvc.Share(ctx, editor, note.ID, &dto.ShareUpsertRequest{
		SharedUID: target, Permission: "read",
	})
	assert.ErrorIs(t, err, code.ErrorNotePermissionDenied)

	// 无关联用户拿到笔记不存在
	_, err = env.shareSvc.Share(ctx, stranger, note.ID, &dto.ShareUpsertRequest{
		SharedUID: target, Permission: "read",
	})
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)

	// 共享列表同样仅拥有者可见
	_, err = env.shareSvc.List(ctx, editor, note.ID)
	assert.ErrorIs(t, err, code.ErrorNotePermissionDenied)
	_, err = env.shareSvc.List(ctx, stranger, note.ID)
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)
}

func TestShareRevoke(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustCreateUser(t, "owner")
	target := env.mustCreateUser(t, "target")

	note, err := env.noteSvc.Create(ctx, owner, &dto.NoteCreateRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	_, err = env.shareSvc.Share(ctx, owner, note.ID, &dto.ShareUpsertRequest{
		SharedUID: target, Permission: "read",
	})
	require.NoError(t, err)

	_, err = env.noteSvc.Get(ctx, target, note.ID)
	require.NoError(t, err)

	// 撤销后立即失去访问
	err = env.shareSvc.Revoke(ctx, owner, note.ID, target)
	require.NoError(t, err)
	_, err = env.noteSvc.Get(ctx, target, note.ID)
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)

	// 撤销不存在的共享
	err = env.shareSvc.Revoke(ctx, owner, note.ID, target)
	assert.ErrorIs(t, err, code.ErrorShareNotFound)
}
