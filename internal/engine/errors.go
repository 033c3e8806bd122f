package engine

import "fmt"

// NotFoundError indicates the referenced record does not exist (or is
// soft-deleted) within the caller's owner scope.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// ValidationError indicates a field constraint was violated. Raised before
// any storage call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// WipLimitError indicates a start attempt while another quest is already
// active for the same owner. Carries the counts for client messaging.
type WipLimitError struct {
	Current int
	Limit   int
}

func (e WipLimitError) Error() string {
	return fmt.Sprintf("active quest limit reached (%d of %d); finish or park the current quest first", e.Current, e.Limit)
}

// StorageError wraps a failure from the entity store. Never swallowed: every
// write in this subsystem is load-bearing.
type StorageError struct {
	Op  string
	Err error
}

func (e StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	return StorageError{Op: op, Err: err}
}
