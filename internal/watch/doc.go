// Package watch implements mlrun's live mode. It watches a single source
// file with fsnotify and re-runs a pass for every modification, one pass at
// a time, until the context is cancelled or the process is interrupted.
package watch
