// Package errors provides classified error primitives used across sitenav.
//
// A ClassifiedError carries a category and a severity next to its message,
// an optional cause and free-form context. The CLI adapter turns categories
// into process exit codes and readable messages.
//
// Example usage:
//
//	err := errors.WrapError(readErr, errors.CategoryFileSystem, "read config").
//		WithContext("path", path).
//		Build()
package errors
