package domain

import "fmt"

// ValidationError reports input rejected at the storage boundary
// (empty title, out-of-range rating or difficulty).
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError reports a group or label that is missing immediately after an
// upsert. That is an invariant violation inside a transaction, not a user error.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found after upsert", e.Kind, e.Name)
}

// SchemaError reports a DDL failure during initialization or reset.
type SchemaError struct {
	Op  string
	Err error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema %s: %v", e.Op, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// StoreError wraps any other failure surfaced by the underlying database:
// constraint violations, busy/locked errors, disk errors. The transaction that
// produced it has already been rolled back.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
