package flowchart

import "errors"

// Error kinds surfaced across the pipeline boundary. The HTTP layer maps each
// to a distinct status; no internal detail travels further than these.
var (
	// ErrSessionNotFound indicates the session id does not resolve to a
	// stored document in the caller's namespace.
	ErrSessionNotFound = errors.New("session not found")

	// ErrTemplateNotFound indicates the template id is outside the catalog.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrGenerationFailed indicates the generator produced no usable graph
	// text. Stored state is left untouched.
	ErrGenerationFailed = errors.New("failed to generate flowchart logic")

	// ErrRenderFailed indicates the graph text could not be rasterized.
	// The session document stays persisted and re-renderable.
	ErrRenderFailed = errors.New("failed to convert flowchart to an image")

	// ErrEmbedFailed indicates the image could not be composited into the
	// template document.
	ErrEmbedFailed = errors.New("failed to embed image in document")
)
