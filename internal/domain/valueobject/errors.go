package valueobject

import "errors"

// Error taxonomy for the analysis pipeline. Validation errors are raised
// before any computation begins; insufficient-data errors abort a
// computation that would otherwise produce NaN or infinity.
var (
	ErrValidation       = errors.New("validation failed")
	ErrInsufficientData = errors.New("insufficient data")
	ErrAnalysisNotFound = errors.New("analysis not found")
)
