package layout

import "errors"

var (
	// ErrInconsistentSharedEdge indicates that two triangles disagree on
	// the length of an edge they share.
	ErrInconsistentSharedEdge = errors.New("layout: inconsistent shared edge")
	// ErrNoSharedEdge indicates a composite triangle that cannot be attached
	// to the rest of the figure along a shared edge.
	ErrNoSharedEdge = errors.New("layout: triangle shares no edge with the figure")
	// ErrUnknownVertex indicates a reference to a vertex label the figure
	// does not contain.
	ErrUnknownVertex = errors.New("layout: unknown vertex")
)
