// Package output renders resolved configurations, diffs, validation
// results and run metadata for the terminal.
package output
