// Package cli holds the terminal presentation used by the spotlogin commands:
// tables for profiles and artists, the spinner shown while waiting for the
// browser, and the interactive artist selection prompt.
//
// Table output uses go-pretty with the rounded style. Progress output is
// written to stderr so that stdout stays pipeable.
package cli
