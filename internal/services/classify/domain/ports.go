package domain

import "context"

// Detector is the classification capability handle.
// Implementations are process-wide singletons owned by the lifecycle; Close
// releases the underlying models and must tolerate repeated calls.
type Detector interface {
	// Detect returns the single best guess for text
	Detect(text string) (Guess, error)

	// DetectTopN returns up to n guesses ordered by descending proportion
	DetectTopN(text string, n int) ([]Guess, error)

	// Close disposes the capability
	Close() error
}

// ServicePort is the classification surface transports mount against
type ServicePort interface {
	Classify(ctx context.Context, text string, topN int) (Response, error)
	Ready() bool
}
