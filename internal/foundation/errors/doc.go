// Package errors provides the classified error primitives used across blogbuilder.
//
// A ClassifiedError carries a category, a severity and a retry strategy next to
// the message and the wrapped cause. Callers build them with the fluent
// ErrorBuilder and present them with the CLI or HTTP adapters:
//
//	err := errors.WrapError(ioErr, errors.CategoryFileSystem, "write page").
//		WithContext("path", out).
//		Fatal().
//		Build()
//
// Document-level problems (a post that fails to parse) are not classified errors;
// they are reported and skipped by the build orchestrator.
package errors
