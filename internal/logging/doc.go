// Package logging renders conversion progress events for the command line.
//
// A handler is a func(convert.ProgressEvent) that can be passed straight to
// convert.NewManager. Handlers are safe for concurrent use, since the
// manager reports from several workers when files run in parallel.
package logging
