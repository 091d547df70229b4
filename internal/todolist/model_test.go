package todolist_test

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoctl/internal/logging"
	"todoctl/internal/service"
	"todoctl/internal/testutil"
	"todoctl/internal/todolist"
)

var errBoom = errors.New("boom")

func seed() []service.Todo {
	return []service.Todo{
		{UserID: 1, ID: 1, Title: "delectus aut autem"},
		{UserID: 1, ID: 7, Title: "quis ut nam", Completed: true},
	}
}

// loaded returns a model whose collection has been fetched from gw.
func loaded(t *testing.T, gw *testutil.FakeGateway, opts ...todolist.Option) *todolist.Model {
	t.Helper()
	m := todolist.New(gw, opts...)
	require.NoError(t, m.Load(context.Background()).Wait())
	return m
}

func placeholderDialog() todolist.Dialog {
	return todolist.Dialog{Mode: todolist.Closed, Editing: service.Placeholder()}
}

func TestLoad_ReplacesCollection(t *testing.T) {
	gw := testutil.NewFakeGateway(seed()...)
	m := loaded(t, gw)

	assert.Equal(t, seed(), m.Todos())
	assert.Equal(t, 1, gw.CallCount("List"))
}

func TestLoad_FailureLeavesCollectionEmpty(t *testing.T) {
	var logs bytes.Buffer
	gw := testutil.NewFakeGateway(seed()...)
	gw.ListErr = errBoom

	m := todolist.New(gw, todolist.WithLogger(logging.New(&logs, logging.Options{})))
	err := m.Load(context.Background()).Wait()

	assert.ErrorIs(t, err, errBoom)
	assert.Empty(t, m.Todos())
	assert.Contains(t, logs.String(), "error fetching todos")
}

func TestAdd_AssignsLastIDPlusOne(t *testing.T) {
	gw := testutil.NewFakeGateway(seed()...)
	m := loaded(t, gw)

	m.OpenAdd()
	require.NoError(t, m.Add(context.Background(), "Buy milk", false).Wait())

	todos := m.Todos()
	require.Len(t, todos, 3)
	last := todos[2]
	assert.Equal(t, 8, last.ID, "server id %d must be discarded", testutil.CreatedID)
	assert.Equal(t, "Buy milk", last.Title)
	assert.False(t, last.Completed)
	assert.Equal(t, service.DefaultUserID, last.UserID)
	assert.Equal(t, 1, gw.CallCount("Create"))
	assert.Equal(t, placeholderDialog(), m.Dialog())
}

func TestAdd_EmptyCollectionKeepsServerID(t *testing.T) {
	gw := testutil.NewFakeGateway()
	m := loaded(t, gw)

	require.NoError(t, m.Add(context.Background(), "first", true).Wait())

	todos := m.Todos()
	require.Len(t, todos, 1)
	assert.Equal(t, testutil.CreatedID, todos[0].ID)
}

func TestAdd_BlankTitleRejected(t *testing.T) {
	for _, title := range []string{"", "   ", "\t\n"} {
		gw := testutil.NewFakeGateway(seed()...)
		m := loaded(t, gw)
		m.OpenAdd()
		m.Stage(title, true)

		err := m.Add(context.Background(), title, true).Wait()

		assert.ErrorIs(t, err, todolist.ErrEmptyTitle)
		assert.Equal(t, seed(), m.Todos())
		assert.Equal(t, 0, gw.CallCount("Create"))
		assert.Equal(t, placeholderDialog(), m.Dialog())
	}
}

func TestAdd_FailureLogsAndClosesDialog(t *testing.T) {
	var logs bytes.Buffer
	gw := testutil.NewFakeGateway(seed()...)
	gw.CreateErr = errBoom
	m := loaded(t, gw, todolist.WithLogger(logging.New(&logs, logging.Options{})))

	m.OpenAdd()
	err := m.Add(context.Background(), "Buy milk", false).Wait()

	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, seed(), m.Todos())
	assert.Equal(t, todolist.Closed, m.Dialog().Mode)
	assert.Contains(t, logs.String(), "error adding todo")
}

func TestAdd_ClosesDialogBeforeResponse(t *testing.T) {
	gw := testutil.NewFakeGateway(seed()...)
	m := loaded(t, gw)
	gw.Hold = make(chan struct{})

	m.OpenAdd()
	op := m.Add(context.Background(), "slow", false)

	assert.Equal(t, todolist.Closed, m.Dialog().Mode)
	assert.Len(t, m.Todos(), 2)

	gw.Hold <- struct{}{}
	require.NoError(t, op.Wait())
	assert.Len(t, m.Todos(), 3)
}

func TestSetCompleted_RemoteRecord(t *testing.T) {
	gw := testutil.NewFakeGateway(seed()...)
	m := loaded(t, gw)

	todo, _ := m.Find(1)
	require.NoError(t, m.SetCompleted(context.Background(), todo, true).Wait())

	got, _ := m.Find(1)
	assert.True(t, got.Completed)
	calls := gw.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "Update", calls[1].Method)
	assert.Equal(t, service.Todo{UserID: 1, ID: 1, Title: "delectus aut autem", Completed: true}, calls[1].Todo)
}

func TestSetCompleted_UsesServerValue(t *testing.T) {
	gw := testutil.NewFakeGateway(seed()...)
	gw.UpdateReply = func(t service.Todo) service.Patch {
		t.Completed = false
		return service.PatchOf(t)
	}
	m := loaded(t, gw)

	todo, _ := m.Find(1)
	require.NoError(t, m.SetCompleted(context.Background(), todo, true).Wait())

	got, _ := m.Find(1)
	assert.False(t, got.Completed)
}

func TestSetCompleted_LocalRecordSkipsNetwork(t *testing.T) {
	gw := testutil.NewFakeGateway(
		service.Todo{UserID: 1, ID: 1, Title: "a"},
		service.Todo{UserID: 1, ID: 205, Title: "b"},
	)
	m := loaded(t, gw)

	todo, _ := m.Find(205)
	op := m.SetCompleted(context.Background(), todo, true)

	select {
	case <-op.Done():
	default:
		t.Fatal("local update should complete immediately")
	}
	got, _ := m.Find(205)
	assert.True(t, got.Completed)
	assert.Equal(t, 0, gw.CallCount("Update"))
}

func TestSetCompleted_BoundaryID(t *testing.T) {
	gw := testutil.NewFakeGateway(service.Todo{UserID: 1, ID: 200, Title: "edge"})
	m := loaded(t, gw)

	todo, _ := m.Find(200)
	require.NoError(t, m.SetCompleted(context.Background(), todo, true).Wait())
	assert.Equal(t, 1, gw.CallCount("Update"))
}

func TestSetCompleted_FailureKeepsLocalState(t *testing.T) {
	gw := testutil.NewFakeGateway(seed()...)
	gw.UpdateErr = errBoom
	m := loaded(t, gw)

	todo, _ := m.Find(7)
	err := m.SetCompleted(context.Background(), todo, false).Wait()

	assert.ErrorIs(t, err, errBoom)
	got, _ := m.Find(7)
	assert.True(t, got.Completed)
}

func TestSetCompleted_UnknownToServer(t *testing.T) {
	gw := testutil.NewFakeGateway(seed()...)
	m := loaded(t, gw)

	// Id 8 is below the local threshold but was never stored by the server.
	m.OpenAdd()
	require.NoError(t, m.Add(context.Background(), "Buy milk", false).Wait())
	todo, ok := m.Find(8)
	require.True(t, ok)

	err := m.SetCompleted(context.Background(), todo, true).Wait()
	assert.ErrorIs(t, err, testutil.ErrNotFound)
	got, _ := m.Find(8)
	assert.False(t, got.Completed)
}

func TestSetCompleted_StaleResponseDiscarded(t *testing.T) {
	gw := testutil.NewFakeGateway(seed()...)
	m := loaded(t, gw)
	gw.Hold = make(chan struct{})

	todo, _ := m.Find(1)
	first := m.SetCompleted(context.Background(), todo, true)
	second := m.SetCompleted(context.Background(), todo, false)

	// Release both; whichever lands, only the latest write may be applied.
	gw.Hold <- struct{}{}
	gw.Hold <- struct{}{}
	require.NoError(t, first.Wait())
	require.NoError(t, second.Wait())

	got, _ := m.Find(1)
	assert.False(t, got.Completed)
}

func TestSetTitle_RemoteRecord(t *testing.T) {
	gw := testutil.NewFakeGateway(seed()...)
	m := loaded(t, gw)

	todo, _ := m.Find(7)
	m.OpenEdit(todo)
	d := m.Dialog()
	assert.Equal(t, todolist.EditOpen, d.Mode)
	assert.Equal(t, todo, d.Editing)
	assert.Equal(t, "quis ut nam", d.Title)
	assert.True(t, d.Completed)

	op := m.SetTitle(context.Background(), "renamed")
	assert.Equal(t, placeholderDialog(), m.Dialog())
	require.NoError(t, op.Wait())

	got, _ := m.Find(7)
	assert.Equal(t, "renamed", got.Title)
	assert.True(t, got.Completed)
	assert.Equal(t, 1, gw.CallCount("Update"))
}

func TestSetTitle_PartialReplyMerges(t *testing.T) {
	gw := testutil.NewFakeGateway(seed()...)
	gw.UpdateReply = func(sent service.Todo) service.Patch {
		return service.Patch{ID: &sent.ID, Title: &sent.Title}
	}
	m := loaded(t, gw)

	todo, _ := m.Find(7)
	m.OpenEdit(todo)
	require.NoError(t, m.SetTitle(context.Background(), "renamed").Wait())

	got, _ := m.Find(7)
	assert.Equal(t, service.Todo{UserID: 1, ID: 7, Title: "renamed", Completed: true}, got)
}

func TestSetTitle_EmptyReplyKeepsLocalRecord(t *testing.T) {
	gw := testutil.NewFakeGateway(seed()...)
	gw.UpdateReply = func(service.Todo) service.Patch { return service.Patch{} }
	m := loaded(t, gw)

	todo, _ := m.Find(1)
	m.OpenEdit(todo)
	require.NoError(t, m.SetTitle(context.Background(), "renamed").Wait())

	got, _ := m.Find(1)
	assert.Equal(t, seed()[0], got)
}

func TestSetTitle_LocalRecordSkipsNetwork(t *testing.T) {
	gw := testutil.NewFakeGateway(service.Todo{UserID: 1, ID: 205, Title: "old"})
	m := loaded(t, gw)

	todo, _ := m.Find(205)
	m.OpenEdit(todo)
	require.NoError(t, m.SetTitle(context.Background(), "new").Wait())

	got, _ := m.Find(205)
	assert.Equal(t, "new", got.Title)
	assert.Equal(t, 0, gw.CallCount("Update"))
	assert.Equal(t, todolist.Closed, m.Dialog().Mode)
}

func TestSetTitle_Rejections(t *testing.T) {
	gw := testutil.NewFakeGateway(seed()...)
	m := loaded(t, gw)

	todo, _ := m.Find(1)
	m.OpenEdit(todo)
	assert.ErrorIs(t, m.SetTitle(context.Background(), "  ").Wait(), todolist.ErrEmptyTitle)
	assert.Equal(t, placeholderDialog(), m.Dialog())

	// Nothing staged after the close above.
	assert.ErrorIs(t, m.SetTitle(context.Background(), "valid").Wait(), todolist.ErrNoSelection)
	assert.Equal(t, placeholderDialog(), m.Dialog())

	assert.Equal(t, 0, gw.CallCount("Update"))
	assert.Equal(t, seed(), m.Todos())
}

func TestSetTitle_FailureKeepsTitle(t *testing.T) {
	gw := testutil.NewFakeGateway(seed()...)
	gw.UpdateErr = errBoom
	m := loaded(t, gw)

	todo, _ := m.Find(1)
	m.OpenEdit(todo)
	assert.ErrorIs(t, m.SetTitle(context.Background(), "renamed").Wait(), errBoom)

	got, _ := m.Find(1)
	assert.Equal(t, "delectus aut autem", got.Title)
}

func TestDelete_Accepted(t *testing.T) {
	var prompt todolist.Prompt
	confirm := todolist.ConfirmFunc(func(_ context.Context, p todolist.Prompt) bool {
		prompt = p
		return true
	})
	gw := testutil.NewFakeGateway(seed()...)
	m := loaded(t, gw, todolist.WithConfirmer(confirm))

	require.NoError(t, m.Delete(context.Background(), 7).Wait())

	assert.Equal(t, []service.Todo{seed()[0]}, m.Todos())
	assert.Equal(t, 1, gw.CallCount("Delete"))
	assert.Equal(t, todolist.DeleteHeader, prompt.Header)
	assert.Equal(t, todolist.DeleteMessage, prompt.Message)
	assert.Equal(t, 7, prompt.ID)
}

func TestDelete_RemovesAllMatching(t *testing.T) {
	gw := testutil.NewFakeGateway(
		service.Todo{UserID: 1, ID: 4, Title: "dup a"},
		service.Todo{UserID: 1, ID: 5, Title: "keep"},
		service.Todo{UserID: 1, ID: 4, Title: "dup b"},
	)
	m := loaded(t, gw, todolist.WithConfirmer(todolist.AcceptAll))

	require.NoError(t, m.Delete(context.Background(), 4).Wait())
	assert.Equal(t, []service.Todo{{UserID: 1, ID: 5, Title: "keep"}}, m.Todos())
	assert.Equal(t, 1, gw.CallCount("Delete"))
}

func TestDelete_LocalIDStillCallsNetwork(t *testing.T) {
	gw := testutil.NewFakeGateway(service.Todo{UserID: 1, ID: 205, Title: "local"})
	m := loaded(t, gw, todolist.WithConfirmer(todolist.AcceptAll))

	require.NoError(t, m.Delete(context.Background(), 205).Wait())
	assert.Equal(t, 1, gw.CallCount("Delete"))
	assert.Empty(t, m.Todos())
}

func TestDelete_Declined(t *testing.T) {
	gw := testutil.NewFakeGateway(seed()...)
	m := loaded(t, gw, todolist.WithConfirmer(todolist.RejectAll))

	assert.ErrorIs(t, m.Delete(context.Background(), 7).Wait(), todolist.ErrDeclined)
	assert.Equal(t, seed(), m.Todos())
	assert.Equal(t, 0, gw.CallCount("Delete"))
}

func TestDelete_DefaultConfirmerDeclines(t *testing.T) {
	gw := testutil.NewFakeGateway(seed()...)
	m := loaded(t, gw)

	assert.ErrorIs(t, m.Delete(context.Background(), 7).Wait(), todolist.ErrDeclined)
	assert.Equal(t, 0, gw.CallCount("Delete"))
}

func TestDelete_FailureKeepsRecord(t *testing.T) {
	gw := testutil.NewFakeGateway(seed()...)
	gw.DeleteErr = errBoom
	m := loaded(t, gw, todolist.WithConfirmer(todolist.AcceptAll))

	assert.ErrorIs(t, m.Delete(context.Background(), 7).Wait(), errBoom)
	assert.Equal(t, seed(), m.Todos())
}

func TestDialog_SingleModeAtATime(t *testing.T) {
	m := todolist.New(testutil.NewFakeGateway())

	m.OpenEdit(service.Todo{UserID: 1, ID: 3, Title: "t"})
	m.OpenAdd()

	d := m.Dialog()
	assert.Equal(t, todolist.AddOpen, d.Mode)
	assert.Equal(t, service.Placeholder(), d.Editing)
	assert.Empty(t, d.Title)
	assert.False(t, d.Completed)
}

func TestCloseDialog_Idempotent(t *testing.T) {
	m := todolist.New(testutil.NewFakeGateway())

	m.OpenEdit(service.Todo{UserID: 1, ID: 3, Title: "t", Completed: true})
	m.Stage("changed", false)
	m.CloseDialog()
	once := m.Dialog()
	m.CloseDialog()

	assert.Equal(t, placeholderDialog(), once)
	assert.Equal(t, once, m.Dialog())
}

func TestOnChange_Notified(t *testing.T) {
	var changes atomic.Int32
	gw := testutil.NewFakeGateway(seed()...)
	m := loaded(t, gw, todolist.WithOnChange(func() { changes.Add(1) }))
	before := changes.Load()

	require.NoError(t, m.Add(context.Background(), "n", false).Wait())
	m.Wait()

	assert.Greater(t, changes.Load(), before)
}

func TestWait_BlocksUntilInflightDone(t *testing.T) {
	gw := testutil.NewFakeGateway(seed()...)
	m := loaded(t, gw)
	gw.Hold = make(chan struct{})

	m.Add(context.Background(), "fire and forget", false)

	done := make(chan struct{})
	go func() {
		m.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Wait returned before the create completed")
	case <-time.After(20 * time.Millisecond):
	}

	gw.Hold <- struct{}{}
	<-done
	assert.Len(t, m.Todos(), 3)
}

func TestIsLocal(t *testing.T) {
	assert.False(t, todolist.IsLocal(200))
	assert.True(t, todolist.IsLocal(201))
	assert.Equal(t, "edit", todolist.EditOpen.String())
}
