package prover

import "fmt"

// Error reports a failure from the prover backend itself — setup, prove,
// or SDK transport (spec §7 ProverError{cause}).
type Error struct {
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("prover error: %s", e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// WrapError wraps cause as a prover Error, or returns nil if cause is nil.
func WrapError(cause error) error {
	if cause == nil {
		return nil
	}
	return &Error{Cause: cause}
}

// LocalVerifyFailedError reports that the SDK's own local verification
// rejected a proof (spec §7 LocalVerifyFailed).
type LocalVerifyFailedError struct {
	Cause error
}

func (e *LocalVerifyFailedError) Error() string {
	if e.Cause == nil {
		return "local proof verification failed"
	}
	return fmt.Sprintf("local proof verification failed: %s", e.Cause)
}

func (e *LocalVerifyFailedError) Unwrap() error {
	return e.Cause
}
