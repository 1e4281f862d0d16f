package args

import (
	"errors"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

var (
	// ErrDuplicateOption reports an alias registered twice within one Parser.
	ErrDuplicateOption = errors.New("args: duplicate option")
	// ErrAmbiguousOption reports an option matched at more than one position in the raw args.
	ErrAmbiguousOption = errors.New("args: ambiguous option")
	// ErrMissingValue reports an option that expects a trailing value but is the last token.
	ErrMissingValue = errors.New("args: missing value")
	// ErrDanglingOption reports an option followed by another registered alias instead of a value.
	ErrDanglingOption = errors.New("args: dangling option")
	// ErrMissingOption reports a required option absent from args and environment.
	ErrMissingOption = errors.New("args: missing option")
	// ErrConversion wraps failures of an option's conversion function.
	ErrConversion = errors.New("args: conversion failed")
	// ErrUninitializedParser reports Validate called before anything was registered.
	ErrUninitializedParser = errors.New("args: uninitialized parser")
	// ErrUnknownArgument reports flag-like tokens that match no registered alias.
	ErrUnknownArgument = errors.New("args: unknown argument")
	// ErrMissingArgument reports required options whose aliases are absent from the raw args.
	ErrMissingArgument = errors.New("args: missing argument")
	// ErrInvalidDefinition reports a malformed declaration (no aliases, empty alias, nil converter).
	ErrInvalidDefinition = errors.New("args: invalid definition")
)

// Error is returned by every parser operation. Kind is one of the Err* sentinels and
// is matched by errors.Is. Detail carries the category, text code and metadata.
type Error struct {
	Kind    error
	Message string
	Aliases []string
	Tokens  []string
	Detail  *goerrors.Error
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// Unwrap exposes the go-errors detail and the conversion cause to errors.As.
func (e *Error) Unwrap() []error {
	if e == nil {
		return nil
	}
	var errs []error
	if e.Detail != nil {
		errs = append(errs, e.Detail)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// Is reports whether target is the error's kind.
func (e *Error) Is(target error) bool {
	if e == nil {
		return target == nil
	}
	return e.Kind == target
}

func newError(kind error, category goerrors.Category, code, msg string, aliases, tokens []string) *Error {
	meta := map[string]any{}
	if len(aliases) > 0 {
		meta["aliases"] = aliases
	}
	if len(tokens) > 0 {
		meta["tokens"] = tokens
	}
	return &Error{
		Kind:    kind,
		Message: msg,
		Aliases: aliases,
		Tokens:  tokens,
		Detail: goerrors.New(msg, category).
			WithTextCode(code).
			WithMetadata(meta),
	}
}

func duplicateOptionError(alias string) *Error {
	return newError(ErrDuplicateOption, goerrors.CategoryValidation, "DUPLICATE_OPTION",
		fmt.Sprintf("multiple definitions of %s not supported", alias), nil, []string{alias})
}

func invalidDefinitionError(aliases []string, reason string) *Error {
	return newError(ErrInvalidDefinition, goerrors.CategoryValidation, "INVALID_DEFINITION",
		fmt.Sprintf("invalid option %s: %s", listAliases(aliases), reason), aliases, nil)
}

func ambiguousOptionError(aliases, found []string) *Error {
	return newError(ErrAmbiguousOption, goerrors.CategoryBadInput, "AMBIGUOUS_OPTION",
		fmt.Sprintf("option %s specified more than once", listAliases(aliases)), aliases, found)
}

func missingValueError(aliases []string, alias string) *Error {
	return newError(ErrMissingValue, goerrors.CategoryBadInput, "MISSING_VALUE",
		fmt.Sprintf("Option %s has no argument", alias), aliases, []string{alias})
}

func danglingOptionError(aliases []string, alias, next string) *Error {
	return newError(ErrDanglingOption, goerrors.CategoryBadInput, "DANGLING_OPTION",
		fmt.Sprintf("Option %s expects a value, but found opt '%s'", alias, next), aliases, []string{alias, next})
}

func missingOptionError(aliases []string) *Error {
	return newError(ErrMissingOption, goerrors.CategoryBadInput, "MISSING_OPTION",
		fmt.Sprintf("could not find %s in args", listAliases(aliases)), aliases, nil)
}

func conversionError(aliases []string, source, raw string, cause error) *Error {
	err := newError(ErrConversion, goerrors.CategoryBadInput, "CONVERSION_FAILED",
		fmt.Sprintf("option %s: cannot convert %q: %v", source, raw, cause), aliases, []string{raw})
	err.Cause = cause
	return err
}

func uninitializedParserError() *Error {
	return newError(ErrUninitializedParser, goerrors.CategoryOperation, "UNINITIALIZED_PARSER",
		"parser has not been used yet, but attempted to validate", nil, nil)
}

func unknownArgumentError(tokens []string) *Error {
	return newError(ErrUnknownArgument, goerrors.CategoryBadInput, "UNKNOWN_ARGUMENTS",
		"unknown arguments: "+strings.Join(tokens, ", "), nil, tokens)
}

func missingArgumentError(primaries []string) *Error {
	return newError(ErrMissingArgument, goerrors.CategoryValidation, "MISSING_ARGUMENTS",
		"missing arguments: "+strings.Join(primaries, ", "), nil, primaries)
}

func listAliases(aliases []string) string {
	return "[" + strings.Join(aliases, ", ") + "]"
}
