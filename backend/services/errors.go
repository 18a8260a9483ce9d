// ABOUTME: Validation errors returned by the pool sizing calculators
// ABOUTME: Each error carries the operator-facing message and a sentinel cause

package services

import "errors"

// Sentinel causes for sizing failures. Match with errors.Is.
var (
	ErrCapacityOverflow = errors.New("capacity overflows 64-bit byte count")

	ErrNoMemoryAvailable   = errors.New("no memory available")
	ErrNotEnoughMemory     = errors.New("not enough memory resources")
	ErrMemoryRequestTooLow = errors.New("memory request below minimum")
	ErrMemoryOverLimit     = errors.New("memory request above available memory")

	ErrPoolTooSmall        = errors.New("pool size below minimum")
	ErrNoDrives            = errors.New("drives per server below one")
	ErrTooFewNodes         = errors.New("node count below minimum")
	ErrInvalidData         = errors.New("invalid sizing data")
	ErrAllocationFailed    = errors.New("layout exceeds cluster size limit")
	ErrVolumeTooSmall      = errors.New("volume size below minimum")
	ErrBelowIntegrationMin = errors.New("volume size below integration minimum")

	ErrNoParityLevels = errors.New("no parity levels")
	ErrInvalidParity  = errors.New("invalid parity level")
	ErrTooFewDrives   = errors.New("too few drives for erasure coding")
)

// ValidationError is a sizing failure meant to be shown to the operator.
// Message is the display text; Err is the sentinel cause.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(cause error, message string) error {
	return &ValidationError{Message: message, Err: cause}
}

// Message returns the operator-facing text for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return err.Error()
}
