package ui

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/todos/internal/client"
	"github.com/mesh-intelligence/todos/pkg/types"
)

// fakeAPI is an in-memory server with the same title uniqueness rule.
type fakeAPI struct {
	items   map[int64]types.Item
	nextID  int64
	token   string
	calls   []string
	failAll error
	failOn  map[string]error
	// dropWrites makes mutations report success without changing anything.
	dropWrites bool
}

func newFakeAPI(titles ...string) *fakeAPI {
	f := &fakeAPI{items: map[int64]types.Item{}, nextID: 1, failOn: map[string]error{}}
	for _, t := range titles {
		f.items[f.nextID] = types.Item{ID: f.nextID, Title: t}
		f.nextID++
	}
	return f
}

func (f *fakeAPI) fail(op string) error {
	f.calls = append(f.calls, op)
	if f.failAll != nil {
		return f.failAll
	}
	return f.failOn[op]
}

func (f *fakeAPI) Login(_ context.Context, username, password string) (string, error) {
	if err := f.fail("login"); err != nil {
		return "", err
	}
	if username != types.DefaultUsername || password != types.DefaultPassword {
		return "", &client.APIError{StatusCode: 401, Message: "Invalid credentials"}
	}
	return types.DefaultToken, nil
}

func (f *fakeAPI) ListItems(context.Context) ([]types.Item, error) {
	if err := f.fail("list"); err != nil {
		return nil, err
	}
	out := make([]types.Item, 0, len(f.items))
	for _, it := range f.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeAPI) CreateItem(_ context.Context, title string) (int64, error) {
	if err := f.fail("create"); err != nil {
		return 0, err
	}
	if f.dropWrites {
		return f.nextID, nil
	}
	for _, it := range f.items {
		if it.Title == title {
			return 0, &client.APIError{StatusCode: 400, Message: "Todo with this title already exists"}
		}
	}
	id := f.nextID
	f.nextID++
	f.items[id] = types.Item{ID: id, Title: title}
	return id, nil
}

func (f *fakeAPI) UpdateItem(_ context.Context, id int64, title string, completed bool) error {
	if err := f.fail("update"); err != nil {
		return err
	}
	if f.dropWrites {
		return nil
	}
	if _, ok := f.items[id]; ok {
		f.items[id] = types.Item{ID: id, Title: title, Completed: completed}
	}
	return nil
}

func (f *fakeAPI) DeleteItem(_ context.Context, id int64) error {
	if err := f.fail("delete"); err != nil {
		return err
	}
	if !f.dropWrites {
		delete(f.items, id)
	}
	return nil
}

func (f *fakeAPI) SetToken(token string) { f.token = token }

func keyRunes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keySpace = tea.KeyMsg{Type: tea.KeySpace}
)

// send delivers msg and then drains every API command the model issues,
// synchronously, until it settles. Cursor blink and list commands are ignored.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	for i := 0; msg != nil && i < 10; i++ {
		next, cmd := m.Update(msg)
		m = next.(Model)
		msg = nil
		if cmd == nil {
			continue
		}
		switch out := runCmd(cmd).(type) {
		case loginMsg, itemsMsg, mutationMsg:
			msg = out
		}
	}
	return m
}

// runCmd executes cmd, giving up on commands that wait on timers.
func runCmd(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case out := <-ch:
		return out
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = send(t, m, keyRunes(string(r)))
	}
	return m
}

func loggedIn(t *testing.T, api *fakeAPI) Model {
	t.Helper()
	m := send(t, New(api, Options{}), keyEnter)
	require.True(t, m.LoggedIn())
	return m
}

func titles(items []types.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Title)
	}
	return out
}

func TestNew_PrefillsDefaultCredentials(t *testing.T) {
	m := New(newFakeAPI(), Options{})
	assert.Equal(t, types.DefaultUsername, m.username.Value())
	assert.Equal(t, types.DefaultPassword, m.password.Value())
	assert.False(t, m.LoggedIn())
	assert.Contains(t, m.View(), "testuser / password")
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name      string
		opts      Options
		failAll   error
		wantIn    bool
		wantError string
	}{
		{"default credentials", Options{}, nil, true, ""},
		{"wrong password", Options{Password: "nope"}, nil, false, "Invalid credentials"},
		{"server unreachable", Options{}, errors.New("dial tcp: connection refused"), false, errUnreachable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI("Learn testing")
			api.failAll = tt.failAll
			m := send(t, New(api, tt.opts), keyEnter)

			assert.Equal(t, tt.wantIn, m.LoggedIn())
			assert.Equal(t, tt.wantError, m.loginError)
			if tt.wantIn {
				assert.Equal(t, types.DefaultToken, api.token)
				assert.Equal(t, []string{"Learn testing"}, titles(m.Items()))
			}
		})
	}
}

func TestLogin_TabSwitchesField(t *testing.T) {
	m := New(newFakeAPI(), Options{})
	assert.Equal(t, 1, m.focus)
	m = send(t, m, keyTab)
	assert.Equal(t, 0, m.focus)
	m = send(t, m, keyTab)
	assert.Equal(t, 1, m.focus)
}

func TestAdd(t *testing.T) {
	api := newFakeAPI("Learn testing")
	m := loggedIn(t, api)

	m = send(t, m, keyRunes("a"))
	require.True(t, m.inputOpen)
	m = typeText(t, m, "Write docs")
	m = send(t, m, keyEnter)

	assert.False(t, m.inputOpen)
	assert.Equal(t, []string{"Learn testing", "Write docs"}, titles(m.Items()))
	assert.Empty(t, m.Error())
}

func TestAdd_BlankTitleIsIgnored(t *testing.T) {
	api := newFakeAPI()
	m := loggedIn(t, api)

	m = send(t, m, keyRunes("a"))
	m = typeText(t, m, "   ")
	m = send(t, m, keyEnter)

	assert.True(t, m.inputOpen)
	assert.NotContains(t, api.calls, "create")
}

func TestAdd_EscCancels(t *testing.T) {
	api := newFakeAPI()
	m := loggedIn(t, api)

	m = send(t, m, keyRunes("a"))
	m = typeText(t, m, "draft")
	m = send(t, m, keyEsc)

	assert.False(t, m.inputOpen)
	assert.NotContains(t, api.calls, "create")
}

func TestAdd_DuplicateShowsErrorAndRefetches(t *testing.T) {
	api := newFakeAPI("Learn testing")
	m := loggedIn(t, api)
	before := len(api.calls)

	m = send(t, m, keyRunes("a"))
	m = typeText(t, m, "Learn testing")
	m = send(t, m, keyEnter)

	assert.Equal(t, "Failed to save todo: HTTP error! status: 400: Todo with this title already exists", m.Error())
	assert.Equal(t, []string{"create", "list"}, api.calls[before:])
	assert.Len(t, m.Items(), 1)
}

func TestEdit_KeepsCompleted(t *testing.T) {
	api := newFakeAPI("Learn testing")
	api.items[1] = types.Item{ID: 1, Title: "Learn testing", Completed: true}
	m := loggedIn(t, api)

	m = send(t, m, keyRunes("e"))
	require.True(t, m.editing)
	assert.Equal(t, "Learn testing", m.input.Value())
	m = typeText(t, m, " well")
	m = send(t, m, keyEnter)

	require.Len(t, m.Items(), 1)
	assert.Equal(t, "Learn testing well", m.Items()[0].Title)
	assert.True(t, m.Items()[0].Completed)
}

func TestToggle(t *testing.T) {
	api := newFakeAPI("Learn testing")
	m := loggedIn(t, api)

	m = send(t, m, keySpace)
	require.Len(t, m.Items(), 1)
	assert.True(t, m.Items()[0].Completed)
	assert.Equal(t, "Learn testing", m.Items()[0].Title)

	m = send(t, m, keySpace)
	assert.False(t, m.Items()[0].Completed)
}

func TestToggle_FailureMessage(t *testing.T) {
	api := newFakeAPI("Learn testing")
	m := loggedIn(t, api)
	api.failOn["update"] = errors.New("boom")

	m = send(t, m, keySpace)
	assert.Equal(t, errToggle, m.Error())
	assert.False(t, m.Items()[0].Completed)
}

func TestDelete(t *testing.T) {
	api := newFakeAPI("one", "two")
	m := loggedIn(t, api)

	m = send(t, m, keyRunes("d"))
	assert.Equal(t, []string{"two"}, titles(m.Items()))

	m = send(t, m, keyRunes("d"))
	assert.Empty(t, m.Items())
	assert.Contains(t, m.View(), "No todos yet. Add one above!")

	// Nothing selected: no request.
	before := len(api.calls)
	m = send(t, m, keyRunes("d"))
	assert.Len(t, api.calls, before)
}

func TestDelete_FailureMessage(t *testing.T) {
	api := newFakeAPI("one")
	m := loggedIn(t, api)
	api.failOn["delete"] = errors.New("boom")

	m = send(t, m, keyRunes("d"))
	assert.Equal(t, "Failed to delete todo: boom", m.Error())
	assert.Len(t, m.Items(), 1)
}

func TestFetchFailureKeepsMirror(t *testing.T) {
	api := newFakeAPI("one")
	m := loggedIn(t, api)
	api.failOn["list"] = errors.New("down")

	m = send(t, m, keyRunes("r"))
	assert.Equal(t, errFetch, m.Error())
	assert.Equal(t, []string{"one"}, titles(m.Items()))
}

func TestLogout(t *testing.T) {
	api := newFakeAPI("one")
	m := loggedIn(t, api)
	before := len(api.calls)

	m = send(t, m, keyRunes("L"))

	assert.False(t, m.LoggedIn())
	assert.Empty(t, m.Items())
	assert.Empty(t, api.token)
	assert.Len(t, api.calls, before)
}

func TestItemsAfterLogoutAreDropped(t *testing.T) {
	api := newFakeAPI("one")
	m := loggedIn(t, api)
	m = send(t, m, keyRunes("L"))

	next, _ := m.Update(itemsMsg{items: []types.Item{{ID: 9, Title: "late"}}})
	m = next.(Model)
	assert.Empty(t, m.Items())
}

func TestView_Counts(t *testing.T) {
	api := newFakeAPI("one", "two")
	api.items[2] = types.Item{ID: 2, Title: "two", Completed: true}
	m := loggedIn(t, api)

	v := m.View()
	assert.Contains(t, v, "Todo App")
	assert.Contains(t, v, "1/2")
	assert.True(t, strings.Contains(v, "one") && strings.Contains(v, "two"))
}

func TestQuit(t *testing.T) {
	m := loggedIn(t, newFakeAPI())
	_, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestMutationCheck_MatchingServerLeavesNoMessage(t *testing.T) {
	api := newFakeAPI("Learn testing")
	m := loggedIn(t, api)

	m = send(t, m, keyRunes("a"))
	m = typeText(t, m, "Write docs")
	m = send(t, m, keyEnter)
	assert.Empty(t, m.Check())

	m = send(t, m, keySpace)
	assert.Empty(t, m.Check())

	m = send(t, m, keyRunes("d"))
	assert.Empty(t, m.Check())
	assert.NotContains(t, m.View(), "still exists")
}

func TestMutationCheck_ReportsIgnoredWrites(t *testing.T) {
	tests := []struct {
		name string
		keys func(t *testing.T, m Model) Model
		want string
	}{
		{
			name: "add",
			keys: func(t *testing.T, m Model) Model {
				m = send(t, m, keyRunes("a"))
				m = typeText(t, m, "Write docs")
				return send(t, m, keyEnter)
			},
			want: `Todo with title "Write docs" not found`,
		},
		{
			name: "edit",
			keys: func(t *testing.T, m Model) Model {
				m = send(t, m, keyRunes("e"))
				m = typeText(t, m, "!")
				return send(t, m, keyEnter)
			},
			want: `Todo was not updated from "Learn testing" to "Learn testing!"`,
		},
		{
			name: "toggle",
			keys: func(t *testing.T, m Model) Model { return send(t, m, keySpace) },
			want: `Todo "Learn testing" is not marked as completed`,
		},
		{
			name: "delete",
			keys: func(t *testing.T, m Model) Model { return send(t, m, keyRunes("d")) },
			want: `Todo with title "Learn testing" still exists`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI("Learn testing")
			m := loggedIn(t, api)
			api.dropWrites = true

			m = tt.keys(t, m)
			assert.Equal(t, tt.want, m.Check())
			assert.Empty(t, m.Error())
			assert.Contains(t, m.View(), tt.want)
		})
	}
}

func TestMutationCheck_ClearedOnLogoutAndPlainRefresh(t *testing.T) {
	api := newFakeAPI("Learn testing")
	m := loggedIn(t, api)
	api.dropWrites = true

	m = send(t, m, keyRunes("d"))
	require.NotEmpty(t, m.Check())

	// A refresh that does not follow a mutation keeps the last result.
	m = send(t, m, keyRunes("r"))
	assert.NotEmpty(t, m.Check())

	m = send(t, m, keyRunes("L"))
	assert.Empty(t, m.Check())
}

func TestMutationCheck_SkippedWhenMutationFails(t *testing.T) {
	api := newFakeAPI("Learn testing")
	m := loggedIn(t, api)
	api.failOn["delete"] = errors.New("boom")

	m = send(t, m, keyRunes("d"))
	assert.Equal(t, "Failed to delete todo: boom", m.Error())
	assert.Empty(t, m.Check())
}

func TestView_EmptyListShowsZeroTotal(t *testing.T) {
	m := loggedIn(t, newFakeAPI())
	v := m.View()
	assert.Contains(t, v, "] 0/0")
	assert.NotContains(t, v, "0/1")
}
