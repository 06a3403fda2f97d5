package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mesh-intelligence/todos/pkg/types"
)

// mutation names the kind of change a mutationMsg reports.
type mutation int

const (
	mutationCreate mutation = iota
	mutationEdit
	mutationToggle
	mutationDelete
)

// loginMsg carries the outcome of a login request.
type loginMsg struct {
	token string
	err   error
}

// itemsMsg carries a freshly fetched list. after is set when the fetch
// follows a successful mutation whose effect should be checked.
type itemsMsg struct {
	items []types.Item
	err   error
	after *mutationMsg
}

// mutationMsg reports a finished create, update, or delete together with the
// titles and flag it was meant to leave behind.
type mutationMsg struct {
	kind      mutation
	title     string
	oldTitle  string
	completed bool
	err       error
}

func loginCmd(api API, username, password string) tea.Cmd {
	return func() tea.Msg {
		token, err := api.Login(context.Background(), username, password)
		return loginMsg{token: token, err: err}
	}
}

func fetchCmd(api API) tea.Cmd {
	return func() tea.Msg {
		items, err := api.ListItems(context.Background())
		return itemsMsg{items: items, err: err}
	}
}

// refetchCmd fetches the list and tags it with the mutation it follows.
func refetchCmd(api API, after mutationMsg) tea.Cmd {
	return func() tea.Msg {
		items, err := api.ListItems(context.Background())
		return itemsMsg{items: items, err: err, after: &after}
	}
}

func createCmd(api API, title string) tea.Cmd {
	return func() tea.Msg {
		_, err := api.CreateItem(context.Background(), title)
		return mutationMsg{kind: mutationCreate, title: title, err: err}
	}
}

func updateCmd(api API, kind mutation, item types.Item, title string, completed bool) tea.Cmd {
	return func() tea.Msg {
		err := api.UpdateItem(context.Background(), item.ID, title, completed)
		return mutationMsg{kind: kind, title: title, oldTitle: item.Title, completed: completed, err: err}
	}
}

func deleteCmd(api API, item types.Item) tea.Cmd {
	return func() tea.Msg {
		err := api.DeleteItem(context.Background(), item.ID)
		return mutationMsg{kind: mutationDelete, title: item.Title, err: err}
	}
}
