// Package errors provides structured error types for the anybox library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: path, held/wanted type names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseAccess, errors.KindTypeMismatch).
//		Have("string").
//		Want("uint64").
//		Detail("typed access failed").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TypeMismatch(errors.PhaseAccess, "string", "uint64")
//	err := errors.Empty(errors.PhaseAccess, "uint64")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
