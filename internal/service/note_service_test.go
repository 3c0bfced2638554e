package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/noteledger/note-ledger-service/internal/dto"
	"github.com/noteledger/note-ledger-service/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteVersionMonotonicity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uid := env.mustCreateUser(t, "alice")

	note, err := env.noteSvc.Create(ctx, uid, &dto.NoteCreateRequest{Title: "t", Content: "v1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), note.Version)

	// 每次成功更新版本号恰好加 1
	for i := 2; i <= 6; i++ {
		note, err = env.noteSvc.Update(ctx, uid, note.ID, &dto.NoteUpdateRequest{
			Title:           "t",
			Content:         fmt.Sprintf("v%d", i),
			ExpectedVersion: note.Version,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(i), note.Version)
	}

	// 版本历史连续无空洞，按版本号降序返回
	versions, count, err := env.versionSvc.List(ctx, uid, note.ID, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(6), count)
	for i, v := range versions {
		assert.Equal(t, int64(6-i), v.Version)
	}
}

func TestOptimisticLockConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uid := env.mustCreateUser(t, "alice")

	note, err := env.noteSvc.Create(ctx, uid, &dto.NoteCreateRequest{Title: "t", Content: "base"})
	require.NoError(t, err)

	// 第一个提交成功
	updated, err := env.noteSvc.Update(ctx, uid, note.ID, &dto.NoteUpdateRequest{
		Title: "t", Content: "first", ExpectedVersion: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Version)

	// 携带过期版本的提交被拒绝
	_, err = env.noteSvc.Update(ctx, uid, note.ID, &dto.NoteUpdateRequest{
		Title: "t", Content: "second", ExpectedVersion: 1,
	})
	assert.ErrorIs(t, err, code.ErrorNoteVersionConflict)

	// 冲突不产生任何可见变更
	got, err := env.noteSvc.Get(ctx, uid, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Content)
	assert.Equal(t, int64(2), got.Version)

	_, count, err := env.versionSvc.List(ctx, uid, note.ID, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestConcurrentRacersExactlyOneWins(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uid := env.mustCreateUser(t, "alice")

	note, err := env.noteSvc.Create(ctx, uid, &dto.NoteCreateRequest{Title: "t", Content: "base"})
	require.NoError(t, err)

	const racers = 8
	var wg sync.WaitGroup
	errs := make([]error, racers)

	// 所有提交方携带相同的期望版本，先提交者胜出
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.noteSvc.Update(ctx, uid, note.ID, &dto.NoteUpdateRequest{
				Title:           "t",
				Content:         fmt.Sprintf("racer-%d", i),
				ExpectedVersion: 1,
			})
		}(i)
	}
	wg.Wait()

	var wins, conflicts int
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, code.ErrorNoteVersionConflict)
			conflicts++
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, racers-1, conflicts)

	got, err := env.noteSvc.Get(ctx, uid, note.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Version)
}

func TestRevertPreservesHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uid := env.mustCreateUser(t, "alice")

	note, err := env.noteSvc.Create(ctx, uid, &dto.NoteCreateRequest{Title: "v1 title", Content: "v1"})
	require.NoError(t, err)

	note, err = env.noteSvc.Update(ctx, uid, note.ID, &dto.NoteUpdateRequest{
		Title: "v2 title", Content: "v2", ExpectedVersion: 1,
	})
	require.NoError(t, err)
	note, err = env.noteSvc.Update(ctx, uid, note.ID, &dto.NoteUpdateRequest{
		Title: "v3 title", Content: "v3", ExpectedVersion: 2,
	})
	require.NoError(t, err)

	// 回滚生成新版本，内容等于目标版本
	reverted, err := env.noteSvc.Revert(ctx, uid, note.ID, &dto.NoteRevertRequest{
		TargetVersion: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), reverted.Version)
	assert.Equal(t, "v1", reverted.Content)
	assert.Equal(t, "v1 title", reverted.Title)

	// 历史不被改写，1..4 全部可读
	_, count, err := env.versionSvc.List(ctx, uid, note.ID, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
	for v := int64(1); v <= 4; v++ {
		got, err := env.versionSvc.Get(ctx, uid, note.ID, v)
		require.NoError(t, err)
		assert.Equal(t, v, got.Version)
	}

	// 回滚到不存在的版本
	_, err = env.noteSvc.Revert(ctx, uid, note.ID, &dto.NoteRevertRequest{
		TargetVersion: 99,
	})
	assert.ErrorIs(t, err, code.ErrorNoteVersionNotFound)
}

func TestAccessIsolation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustCreateUser(t, "owner")
	viewer := env.mustCreateUser(t, "viewer")
	editor := env.mustCreateUser(t, "editor")
	stranger := env.mustCreateUser(t, "stranger")

	note, err := env.noteSvc.Create(ctx, owner, &dto.NoteCreateRequest{Title: "t", Content: "secret"})
	require.NoError(t, err)

	_, err = env.shareSvc.Share(ctx, owner, note.ID, &dto.ShareUpsertRequest{SharedUID: viewer, Permission: "read"})
	require.NoError(t, err)
	_, err = env.shareSvc.Share(ctx, owner, note.ID, &dto.ShareUpsertRequest{SharedUID: editor, Permission: "edit"})
	require.NoError(t, err)

	// 无关联用户对读和写一律拿到笔记不存在
	_, err = env.noteSvc.Get(ctx, stranger, note.ID)
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)
	_, err = env.noteSvc.Update(ctx, stranger, note.ID, &dto.NoteUpdateRequest{
		Title: "x", Content: "x", ExpectedVersion: 1,
	})
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)

	// 只读用户可读不可写
	got, err := env.noteSvc.Get(ctx, viewer, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "secret", got.Content)
	assert.Equal(t, "viewer", got.AccessLevel)
	_, err = env.noteSvc.Update(ctx, viewer, note.ID, &dto.NoteUpdateRequest{
		Title: "x", Content: "x", ExpectedVersion: 1,
	})
	assert.ErrorIs(t, err, code.ErrorNotePermissionDenied)

	// 可写用户提交成功
	updated, err := env.noteSvc.Update(ctx, editor, note.ID, &dto.NoteUpdateRequest{
		Title: "t", Content: "edited", ExpectedVersion: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Version)

	// 回滚仅拥有者可执行，编辑者也不行
	_, err = env.noteSvc.Revert(ctx, editor, note.ID, &dto.NoteRevertRequest{TargetVersion: 1})
	assert.ErrorIs(t, err, code.ErrorNotePermissionDenied)
	_, err = env.noteSvc.Revert(ctx, stranger, note.ID, &dto.NoteRevertRequest{TargetVersion: 1})
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)

	// 删除仅拥有者可执行
	err = env.noteSvc.Delete(ctx, editor, note.ID)
	assert.ErrorIs(t, err, code.ErrorNotePermissionDenied)
	err = env.noteSvc.Delete(ctx, stranger, note.ID)
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)
	err = env.noteSvc.Delete(ctx, owner, note.ID)
	require.NoError(t, err)

	// 软删除后所有读写入口都表现为不存在
	_, err = env.noteSvc.Get(ctx, owner, note.ID)
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)
	_, err = env.noteSvc.Update(ctx, editor, note.ID, &dto.NoteUpdateRequest{
		Title: "x", Content: "x", ExpectedVersion: 2,
	})
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)
	err = env.noteSvc.Delete(ctx, owner, note.ID)
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)
}

func TestRevokedEditorRejectedAtCommit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustCreateUser(t, "owner")
	editor := env.mustCreateUser(t, "editor")

	note, err := env.noteSvc.Create(ctx, owner, &dto.NoteCreateRequest{Title: "t", Content: "base"})
	require.NoError(t, err)

	_, err = env.shareSvc.Share(ctx, owner, note.ID, &dto.ShareUpsertRequest{SharedUID: editor, Permission: "edit"})
	require.NoError(t, err)

	// 降级为只读后，提交在事务内被复核拒绝
	_, err = env.shareSvc.Share(ctx, owner, note.ID, &dto.ShareUpsertRequest{SharedUID: editor, Permission: "read"})
	require.NoError(t, err)
	_, err = env.noteRepo.UpdateCAS(ctx, note.ID, 1, "t", "sneaky", editor)
	assert.Error(t, err)

	// 完全撤销后，提交方连笔记的存在都不可见
	err = env.shareSvc.Revoke(ctx, owner, note.ID, editor)
	require.NoError(t, err)
	_, err = env.noteSvc.Update(ctx, editor, note.ID, &dto.NoteUpdateRequest{
		Title: "t", Content: "sneaky", ExpectedVersion: 1,
	})
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)
}

func TestListAndSearchScopedToAccessible(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.mustCreateUser(t, "alice")
	bob := env.mustCreateUser(t, "bob")

	own, err := env.noteSvc.Create(ctx, alice, &dto.NoteCreateRequest{Title: "alice note", Content: "hello world"})
	require.NoError(t, err)
	shared, err := env.noteSvc.Create(ctx, bob, &dto.NoteCreateRequest{Title: "bob shared", Content: "hello from bob"})
	require.NoError(t, err)
	_, err = env.noteSvc.Create(ctx, bob, &dto.NoteCreateRequest{Title: "bob private", Content: "hello hidden"})
	require.NoError(t, err)

	_, err = env.shareSvc.Share(ctx, bob, shared.ID, &dto.ShareUpsertRequest{SharedUID: alice, Permission: "read"})
	require.NoError(t, err)

	// 列表只含自有和被共享的笔记
	items, count, err := env.noteSvc.List(ctx, alice, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	ids := map[int64]bool{}
	for _, item := range items {
		ids[item.ID] = true
	}
	assert.True(t, ids[own.ID])
	assert.True(t, ids[shared.ID])

	// 搜索同样限定在可访问范围内
	results, count, err := env.noteSvc.Search(ctx, alice, "hello", 1, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	for _, item := range results {
		assert.NotEqual(t, "bob private", item.Title)
	}

	// LIKE 通配符按字面匹配
	_, count, err = env.noteSvc.Search(ctx, alice, "%", 1, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestFullScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustCreateUser(t, "owner")
	collab := env.mustCreateUser(t, "collab")

	// 创建并协作编辑
	note, err := env.noteSvc.Create(ctx, owner, &dto.NoteCreateRequest{Title: "doc", Content: "draft"})
	require.NoError(t, err)

	_, err = env.shareSvc.Share(ctx, owner, note.ID, &dto.ShareUpsertRequest{SharedUID: collab, Permission: "edit"})
	require.NoError(t, err)

	note, err = env.noteSvc.Update(ctx, collab, note.ID, &dto.NoteUpdateRequest{
		Title: "doc", Content: "collab edit", ExpectedVersion: 1,
	})
	require.NoError(t, err)

	// 拥有者基于过期版本提交失败，重读后成功
	_, err = env.noteSvc.Update(ctx, owner, note.ID, &dto.NoteUpdateRequest{
		Title: "doc", Content: "owner edit", ExpectedVersion: 1,
	})
	assert.ErrorIs(t, err, code.ErrorNoteVersionConflict)

	current, err := env.noteSvc.Get(ctx, owner, note.ID)
	require.NoError(t, err)
	note, err = env.noteSvc.Update(ctx, owner, note.ID, &dto.NoteUpdateRequest{
		Title: "doc", Content: "owner edit", ExpectedVersion: current.Version,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), note.Version)

	// 差异与回滚
	diff, err := env.versionSvc.Diff(ctx, collab, note.ID, 1, 3)
	require.NoError(t, err)
	assert.NotEmpty(t, diff.Patch)

	reverted, err := env.noteSvc.Revert(ctx, owner, note.ID, &dto.NoteRevertRequest{
		TargetVersion: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "collab edit", reverted.Content)
	assert.Equal(t, int64(4), reverted.Version)

	// 收尾：撤销共享并删除
	err = env.shareSvc.Revoke(ctx, owner, note.ID, collab)
	require.NoError(t, err)
	_, err = env.noteSvc.Get(ctx, collab, note.ID)
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)

	err = env.noteSvc.Delete(ctx, owner, note.ID)
	require.NoError(t, err)
}
