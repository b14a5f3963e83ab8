// Package graph implements the in-memory flow configuration model
//
// A Session owns the listener graph, starting point set, and derived
// action list for one editing session. Mutations run to completion
// before returning and the session is strictly single-writer; callers
// that share a session across goroutines must serialize access
package graph
