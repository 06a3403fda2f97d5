package ui

import (
	"fmt"

	"github.com/mesh-intelligence/todos/pkg/types"
)

// verifyMutation checks that a list fetched after a successful mutation
// reflects it. It returns "" on a match and a description of the mismatch
// otherwise.
func verifyMutation(items []types.Item, m mutationMsg) string {
	switch m.kind {
	case mutationCreate:
		if _, ok := findTitle(items, m.title); !ok {
			return fmt.Sprintf("Todo with title %q not found", m.title)
		}
	case mutationEdit:
		if _, ok := findTitle(items, m.title); !ok {
			return fmt.Sprintf("Todo was not updated from %q to %q", m.oldTitle, m.title)
		}
	case mutationToggle:
		it, ok := findTitle(items, m.title)
		if !ok {
			return fmt.Sprintf("Todo with title %q not found", m.title)
		}
		if m.completed && !it.Completed {
			return fmt.Sprintf("Todo %q is not marked as completed", m.title)
		}
	case mutationDelete:
		if _, ok := findTitle(items, m.title); ok {
			return fmt.Sprintf("Todo with title %q still exists", m.title)
		}
	}
	return ""
}

func findTitle(items []types.Item, title string) (types.Item, bool) {
	for _, it := range items {
		if it.Title == title {
			return it, true
		}
	}
	return types.Item{}, false
}
