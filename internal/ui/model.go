// Package ui implements the interactive terminal client for the todos API.
//
// The model has two screens. The login screen holds a prefilled credential
// form; the list screen mirrors the server's items. The mirror is never
// edited locally: every create, edit, toggle, or delete is sent to the API and
// followed by a full re-fetch, and only the fetched list replaces the mirror.
package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mesh-intelligence/todos/internal/client"
	"github.com/mesh-intelligence/todos/pkg/types"
)

// API is the server surface the UI drives. *client.Client implements it.
type API interface {
	Login(ctx context.Context, username, password string) (string, error)
	ListItems(ctx context.Context) ([]types.Item, error)
	CreateItem(ctx context.Context, title string) (int64, error)
	UpdateItem(ctx context.Context, id int64, title string, completed bool) error
	DeleteItem(ctx context.Context, id int64) error
	SetToken(token string)
}

// Options prefill the login form.
type Options struct {
	Username string
	Password string
}

type screen int

const (
	screenLoggedOut screen = iota
	screenLoggedIn
)

// Error texts shown inline.
const (
	errFetch       = "Failed to fetch todos"
	errSave        = "Failed to save todo: "
	errDelete      = "Failed to delete todo: "
	errToggle      = "Failed to update todo status"
	errUnreachable = "Failed to connect to server. Please ensure the backend is running and accessible."
)

// Model is the Bubble Tea model for the whole client.
type Model struct {
	api    API
	screen screen
	token  string

	// login screen
	username   textinput.Model
	password   textinput.Model
	focus      int // 0 username, 1 password
	loggingIn  bool
	loginError string

	// list screen
	items     []types.Item // last list fetched from the server
	list      list.Model
	input     textinput.Model
	inputOpen bool
	editing   bool
	editItem  types.Item
	err       string // persistent until logout
	check     string // result of verifying the last mutation against the server

	keys keyMap
	help help.Model

	width, height int
}

// New returns a logged-out Model. Empty Options fields fall back to the
// default credential pair.
func New(api API, opts Options) Model {
	def := types.DefaultCredentials()
	if opts.Username == "" {
		opts.Username = def.Username
	}
	if opts.Password == "" {
		opts.Password = def.Password
	}

	user := textinput.New()
	user.Prompt = "Username: "
	user.Placeholder = "Username"
	user.SetValue(opts.Username)

	pass := textinput.New()
	pass.Prompt = "Password: "
	pass.Placeholder = "Password"
	pass.EchoMode = textinput.EchoPassword
	pass.SetValue(opts.Password)

	in := textinput.New()
	in.Prompt = "> "
	in.CharLimit = 200

	m := Model{
		api:      api,
		screen:   screenLoggedOut,
		username: user,
		password: pass,
		focus:    1,
		list:     newItemList(),
		input:    in,
		keys:     defaultKeys(),
		help:     help.New(),
		width:    80,
		height:   24,
	}
	m.password.Focus()
	return m
}

// Run starts the program on the alternate screen and blocks until the user
// quits.
func Run(api API, opts Options) error {
	p := tea.NewProgram(New(api, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// LoggedIn reports whether the model is on the list screen.
func (m Model) LoggedIn() bool { return m.screen == screenLoggedIn }

// Items returns the current mirror.
func (m Model) Items() []types.Item { return m.items }

// Error returns the inline error message, if any.
func (m Model) Error() string { return m.err }

// Check returns the message left by the last mutation check, or "" when the
// server list matched the change.
func (m Model) Check() string { return m.check }

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width-4, m.listHeight())
		m.help.Width = msg.Width - 4
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case loginMsg:
		return m.handleLogin(msg)

	case itemsMsg:
		return m.handleItems(msg)

	case mutationMsg:
		return m.handleMutation(msg)
	}

	if m.screen == screenLoggedOut {
		return m.updateLogin(msg)
	}
	if m.inputOpen {
		return m.updateInput(msg)
	}
	return m.updateList(msg)
}

func (m Model) handleLogin(msg loginMsg) (tea.Model, tea.Cmd) {
	m.loggingIn = false
	if msg.err != nil {
		m.loginError = loginErrorText(msg.err)
		return m, nil
	}

	m.token = msg.token
	m.api.SetToken(msg.token)
	m.screen = screenLoggedIn
	m.loginError = ""
	m.err = ""
	return m, fetchCmd(m.api)
}

func (m Model) handleItems(msg itemsMsg) (tea.Model, tea.Cmd) {
	if m.screen != screenLoggedIn {
		// Fetch completed after logout.
		return m, nil
	}
	if msg.err != nil {
		m.err = errFetch
		return m, nil
	}

	m.items = msg.items
	if msg.after != nil {
		m.check = verifyMutation(msg.items, *msg.after)
	}
	cursor := m.list.Index()
	cmd := m.list.SetItems(toEntries(msg.items))
	if n := len(msg.items); n > 0 {
		if cursor >= n {
			cursor = n - 1
		}
		m.list.Select(cursor)
	}
	return m, cmd
}

func (m Model) handleMutation(msg mutationMsg) (tea.Model, tea.Cmd) {
	if m.screen != screenLoggedIn {
		return m, nil
	}
	if msg.err != nil {
		switch msg.kind {
		case mutationCreate, mutationEdit:
			m.err = errSave + msg.err.Error()
		case mutationToggle:
			m.err = errToggle
		case mutationDelete:
			m.err = errDelete + msg.err.Error()
		}
		m.check = ""
		return m, fetchCmd(m.api)
	}
	return m, refetchCmd(m.api, msg)
}

func (m Model) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			return m, tea.Quit
		case "tab", "shift+tab", "up", "down":
			m.focus = 1 - m.focus
			if m.focus == 0 {
				m.password.Blur()
				return m, m.username.Focus()
			}
			m.username.Blur()
			return m, m.password.Focus()
		case "enter":
			if m.loggingIn {
				return m, nil
			}
			m.loggingIn = true
			m.loginError = ""
			return m, loginCmd(m.api, m.username.Value(), m.password.Value())
		}
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			title := m.input.Value()
			if strings.TrimSpace(title) == "" {
				return m, nil
			}
			var cmd tea.Cmd
			if m.editing {
				cmd = updateCmd(m.api, mutationEdit, m.editItem, title, m.editItem.Completed)
			} else {
				cmd = createCmd(m.api, title)
			}
			m = m.closeInput()
			return m, cmd
		case "esc":
			m = m.closeInput()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(k, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(k, m.keys.Add):
			m.inputOpen = true
			m.editing = false
			m.input.SetValue("")
			m.input.Placeholder = "Add a new task..."
			m.list.SetSize(m.width-4, m.listHeight())
			return m, m.input.Focus()
		case key.Matches(k, m.keys.Edit):
			it, ok := m.selected()
			if !ok {
				return m, nil
			}
			m.inputOpen = true
			m.editing = true
			m.editItem = it
			m.input.SetValue(it.Title)
			m.input.CursorEnd()
			m.input.Placeholder = "Edit task..."
			m.list.SetSize(m.width-4, m.listHeight())
			return m, m.input.Focus()
		case key.Matches(k, m.keys.Toggle):
			it, ok := m.selected()
			if !ok {
				return m, nil
			}
			return m, updateCmd(m.api, mutationToggle, it, it.Title, !it.Completed)
		case key.Matches(k, m.keys.Delete):
			it, ok := m.selected()
			if !ok {
				return m, nil
			}
			return m, deleteCmd(m.api, it)
		case key.Matches(k, m.keys.Refresh):
			return m, fetchCmd(m.api)
		case key.Matches(k, m.keys.Logout):
			return m.logout(), nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// logout drops the token and the mirror locally. No request is sent.
func (m Model) logout() Model {
	m.token = ""
	m.api.SetToken("")
	m.items = nil
	m.list.SetItems(nil)
	m = m.closeInput()
	m.err = ""
	m.check = ""
	m.loginError = ""
	m.screen = screenLoggedOut
	return m
}

func (m Model) closeInput() Model {
	m.inputOpen = false
	m.editing = false
	m.editItem = types.Item{}
	m.input.SetValue("")
	m.input.Blur()
	m.list.SetSize(m.width-4, m.listHeight())
	return m
}

func (m Model) selected() (types.Item, bool) {
	e, ok := m.list.SelectedItem().(itemEntry)
	if !ok {
		return types.Item{}, false
	}
	return e.item, true
}

func (m Model) listHeight() int {
	h := m.height - 8
	if m.inputOpen {
		h -= 4
	}
	if h < 3 {
		h = 3
	}
	return h
}

func loginErrorText(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return "Invalid credentials"
	}
	return errUnreachable
}

func (m Model) View() string {
	if m.screen == screenLoggedOut {
		return m.loginView()
	}
	return m.listView()
}

func (m Model) loginView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Login") + "\n\n")
	b.WriteString(mutedStyle.Render("Default credentials: testuser / password") + "\n\n")
	if m.loginError != "" {
		b.WriteString(errorStyle.Render(m.loginError) + "\n\n")
	}
	b.WriteString(m.username.View() + "\n")
	b.WriteString(m.password.View() + "\n\n")
	if m.loggingIn {
		b.WriteString(accentStyle.Render("Logging in...") + "\n")
	} else {
		b.WriteString(accentStyle.Render("[ Login ]") + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("tab switch field • enter log in • esc quit"))
	return panelString(b.String())
}

func (m Model) listView() string {
	done, pending := types.CountCompleted(m.items)
	header := fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Todo App"),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), pending,
		accentStyle.Render("Total"), len(m.items),
	)

	var b strings.Builder
	b.WriteString(header + "\n")
	b.WriteString(mutedStyle.Render(progressBar(done, len(m.items), 28)) + "\n")
	if m.err != "" {
		b.WriteString(errorStyle.Render(m.err) + "\n")
	}
	if m.check != "" {
		b.WriteString(warnStyle.Render(m.check) + "\n")
	}
	b.WriteString("\n")

	if len(m.items) == 0 {
		b.WriteString(mutedStyle.Render("No todos yet. Add one above!") + "\n")
	} else {
		b.WriteString(m.list.View() + "\n")
	}

	if m.inputOpen {
		title := "Add new task"
		if m.editing {
			title = "Edit task"
		}
		b.WriteString(inputBar(title, m.input.View()) + "\n")
	}

	b.WriteString(m.help.View(m.keys))
	return panelString(b.String())
}
