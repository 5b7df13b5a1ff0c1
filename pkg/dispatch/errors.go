package dispatch

import "fmt"

// PanicError wraps a panic recovered from a running system body so
// Execute can report it like any other error, after the borrow ledger
// has already reconciled the system's release.
type PanicError struct {
	System string
	Value  any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("dispatch: system %q panicked: %v", e.System, e.Value)
}
