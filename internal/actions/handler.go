package actions

// ActionHandler defines the interface for executing and validating actions
type ActionHandler interface {
	// Execute runs the code with the caller's arguments and returns output
	// or error. It must not block on external processes.
	Execute(code string, args []float64) (string, error)

	// Validate checks the syntax of the code
	Validate(code string) error

	// IsSupported returns true if the handler can run on the current platform
	IsSupported() bool
}
