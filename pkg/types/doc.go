// Package types defines the ItemStore interface, the Item entity, the
// configuration passed to a store, and the standard errors shared by the
// todos server, its client, and the terminal UI.
package types
