package types

// Item is a single todo record.
type Item struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// SeedTitle is the title of the row inserted into an empty store on first
// startup.
const SeedTitle = "Learn testing"

// ValidateTitle returns ErrTitleRequired for an empty title. Whitespace-only
// titles are accepted; only the empty string is rejected.
func ValidateTitle(title string) error {
	if title == "" {
		return ErrTitleRequired
	}
	return nil
}

// CountCompleted returns how many items are completed and how many are
// still pending.
func CountCompleted(items []Item) (done, pending int) {
	for _, it := range items {
		if it.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}
