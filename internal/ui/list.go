package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mesh-intelligence/todos/pkg/types"
)

// itemEntry adapts types.Item to list.Item.
type itemEntry struct {
	item types.Item
}

func (e itemEntry) FilterValue() string { return e.item.Title }

// itemDelegate renders one item per line: cursor, checkbox, title.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, li list.Item) {
	e, ok := li.(itemEntry)
	if !ok {
		return
	}

	box := mutedStyle.Render(boxUnchecked)
	text := e.item.Title
	if e.item.Completed {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s", prefix, box, text)
}

func newItemList() list.Model {
	l := list.New(nil, itemDelegate{}, 80, 20)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)
	l.SetShowPagination(true)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.SetStatusBarItemName("todo", "todos")
	l.Styles.PaginationStyle = helpStyle
	return l
}

func toEntries(items []types.Item) []list.Item {
	out := make([]list.Item, 0, len(items))
	for _, it := range items {
		out = append(out, itemEntry{item: it})
	}
	return out
}
