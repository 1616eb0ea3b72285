// Package session owns the state of a single quote card session: the
// current quote, the loading flag, the selected template and the tag
// filter. Surfaces drive it through RefreshQuote, SelectTemplate,
// CycleTemplate and ExportCurrentView and read it back with Snapshot.
package session
