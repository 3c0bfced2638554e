package service

import (
	"context"
	"testing"

	"github.com/noteledger/note-ledger-service/internal/domain"
	"github.com/noteledger/note-ledger-service/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAccessLevels(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustCreateUser(t, "owner")
	viewer := env.mustCreateUser(t, "viewer")
	editor := env.mustCreateUser(t, "editor")
	stranger := env.mustCreateUser(t, "stranger")

	note, err := env.noteSvc.Create(ctx, owner, &dto.NoteCreateRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	_, err = env.shareSvc.Share(ctx, owner, note.ID, &dto.ShareUpsertRequest{SharedUID: viewer, Permission: "read"})
	require.NoError(t, err)
	_, err = env.shareSvc.Share(ctx, owner, note.ID, &dto.ShareUpsertRequest{SharedUID: editor, Permission: "edit"})
	require.NoError(t, err)

	cases := []struct {
		name  string
		uid   int64
		level domain.AccessLevel
	}{
		{"owner", owner, domain.AccessOwner},
		{"editor", editor, domain.AccessEditor},
		{"viewer", viewer, domain.AccessViewer},
		{"stranger", stranger, domain.AccessNone},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			level, got, err := env.resolver.Resolve(ctx, note.ID, c.uid)
			require.NoError(t, err)
			assert.Equal(t, c.level, level)
			require.NotNil(t, got)
			assert.Equal(t, note.ID, got.ID)
		})
	}
}

func TestResolveLevelCapabilities(t *testing.T) {
	assert.True(t, domain.AccessOwner.CanManage())
	assert.True(t, domain.AccessOwner.CanWrite())
	assert.True(t, domain.AccessOwner.CanRead())

	assert.False(t, domain.AccessEditor.CanManage())
	assert.True(t, domain.AccessEditor.CanWrite())
	assert.True(t, domain.AccessEditor.CanRead())

	assert.False(t, domain.AccessViewer.CanWrite())
	assert.True(t, domain.AccessViewer.CanRead())

	assert.False(t, domain.AccessNone.CanRead())
}

func TestResolveMissingAndDeletedNote(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustCreateUser(t, "owner")

	_, _, err := env.resolver.Resolve(ctx, 99999, owner)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	note, err := env.noteSvc.Create(ctx, owner, &dto.NoteCreateRequest{Title: "t", Content: "c"})
	require.NoError(t, err)
	require.NoError(t, env.noteSvc.Delete(ctx, owner, note.ID))

	// 已软删除的笔记视同不存在
	_, _, err = env.resolver.Resolve(ctx, note.ID, owner)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
