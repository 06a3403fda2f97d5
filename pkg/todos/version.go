// Package todos holds project-wide metadata for the todos module.
package todos

// Version is the release version reported by `todos version`.
const Version = "0.1.0"
