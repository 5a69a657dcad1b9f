package ports

// ExtractionHost defines the lifecycle of the context that owns a rendered page
// and answers extraction requests for it
type ExtractionHost interface {
	// Start attaches the host and begins answering requests
	Start() error

	// Stop detaches the host; later requests find no responder
	Stop() error
}
