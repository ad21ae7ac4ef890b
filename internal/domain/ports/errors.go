package ports

import "errors"

// Errors crossing the port boundary. Adapters wrap these so the service
// layer and the presentation shell can distinguish failure classes
// without knowing backend details.
var (
	// ErrGenerationFailed is returned when slide generation exhausts its
	// bounded retries without producing a single valid slide
	ErrGenerationFailed = errors.New("failed to generate valid slide content")

	// ErrInvalidResponse is returned for a single malformed model
	// response; the generator retries these internally
	ErrInvalidResponse = errors.New("invalid response from generation backend")

	// ErrNoUsableLayout is returned when a template contains no layout
	// with both title and body placeholders
	ErrNoUsableLayout = errors.New("no suitable slide layout with title and body placeholders found in the template")

	// ErrTemplateNotFound is returned when the requested template does
	// not exist in the templates directory
	ErrTemplateNotFound = errors.New("template not found")
)
