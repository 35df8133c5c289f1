package planner

import "errors"

// Errors returned by planning.
var (
	// ErrNoEdges indicates a request with an empty edge batch.
	ErrNoEdges = errors.New("no edges in request")

	// ErrNilIndex indicates a planner built without a timeline index.
	ErrNilIndex = errors.New("nil timeline index")
)
