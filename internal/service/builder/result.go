package builder

// Status classifies the outcome of one game build.
type Status int

const (
	// StatusSuccess means the package was written to the output directory.
	StatusSuccess Status = iota
	// StatusSkipped means the game was not built because its inputs are
	// incomplete. Skips never fail a batch.
	StatusSkipped
	// StatusFailed means the build was attempted and aborted, typically
	// because an external tool exited non-zero.
	StatusFailed
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of one Build invocation.
type Result struct {
	// Slug is the output base name of the game.
	Slug string
	// Status classifies the outcome.
	Status Status
	// OutputPath is the produced package location. Set only on success.
	OutputPath string
	// Reason explains a skip in human-readable terms. Set only on skips.
	Reason string
	// Err is the build failure. Set only on failures.
	Err error
}

// success builds a Result for a produced package.
func success(slug, outputPath string) *Result {
	return &Result{
		Slug:       slug,
		Status:     StatusSuccess,
		OutputPath: outputPath,
	}
}

// skipped builds a Result for a game that was not attempted.
func skipped(slug, reason string) *Result {
	return &Result{
		Slug:   slug,
		Status: StatusSkipped,
		Reason: reason,
	}
}

// failed builds a Result for an aborted build.
func failed(slug string, err error) *Result {
	return &Result{
		Slug:   slug,
		Status: StatusFailed,
		Err:    err,
	}
}
