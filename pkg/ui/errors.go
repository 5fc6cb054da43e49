package ui

import "errors"

var (
	// ErrDuplicateWindowID is returned by CreateWindow when the id is
	// already registered for a live window. Duplicate ids are a usage
	// error, not a recoverable condition.
	ErrDuplicateWindowID = errors.New("duplicate window id")

	// ErrEmptyWindowID is returned by CreateWindow for an empty id.
	ErrEmptyWindowID = errors.New("empty window id")

	// ErrUnknownWindowKind is returned by CreateWindow for a kind outside
	// the closed variant set.
	ErrUnknownWindowKind = errors.New("unknown window kind")
)
