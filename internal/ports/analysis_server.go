package ports

// AnalysisServer defines the interface for the classification backend server
type AnalysisServer interface {
	// Start binds the listen address and serves in the background
	Start() error

	// Stop shuts the server down
	Stop() error

	// Err delivers a failure of the serving loop after Start succeeded
	Err() <-chan error
}
