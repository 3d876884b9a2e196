// Package session owns the live editing state and routes every
// handler the host surface invokes.
//
// A Session ties together the document tree, the at-most-one active
// edit state, the reconciliation scheduler, the preview panel, and the
// external collaborators (render engine, persistent store, host
// editing primitives). All handlers run on the host's single event
// loop; the session performs no locking of its own.
package session
