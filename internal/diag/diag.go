// Package diag implements the structured diagnostics used throughout
// this module, grounded on the teacher's internal/errors package: a
// small code taxonomy, a Report value, and an Error that carries one.
// Fatal error kinds (InvalidEqualTerm, InvalidEqualType, InvalidCoerce,
// Impossible) are distinguished from user-recoverable ones (Typing,
// Runtime, MatchFail) via the Fataler interface rather than a
// separate exception hierarchy, since Go has no checked exceptions:
// IsFatal inspects any error for a Fatal() bool method.
package diag

import (
	"fmt"

	"github.com/zzmjohn/andromeda/internal/tt"
)

// Code is a structured error code, grouped by kind the way the
// teacher's codes.go groups PAR/MOD/LDR/TC/ELB codes by compiler
// phase.
type Code string

const (
	CodeTypingMismatch    Code = "K-TYP001"
	CodeUnknownIdentifier Code = "K-TYP002"
	CodeRuntimeNonClosure Code = "K-RT001"
	CodeInvalidEqualTerm  Code = "K-EQ001"
	CodeInvalidEqualType  Code = "K-EQ002"
	CodeInvalidCoerce     Code = "K-EQ003"
	CodeMatchFail         Code = "K-MATCH001"
	CodeImpossible        Code = "K-KERNEL001"
)

// Loc is a source location. Reports carry tt.Loc directly now that
// diag sits above tt in the dependency order (tt has no need to
// report diagnostics about itself).
type Loc = tt.Loc

// Report is a structured diagnostic.
type Report struct {
	Code        Code
	Loc         Loc
	Message     string
	Recoverable bool
}

func (r Report) String() string {
	if r.Loc.File == "" {
		return fmt.Sprintf("[%s] %s", r.Code, r.Message)
	}
	return fmt.Sprintf("%s:%d:%d: [%s] %s", r.Loc.File, r.Loc.Line, r.Loc.Col, r.Code, r.Message)
}

// Error wraps a Report as a standard error.
type Error struct {
	Report Report
	Cause  error
}

func (e *Error) Error() string { return e.Report.String() }
func (e *Error) Unwrap() error { return e.Cause }

// Fatal reports whether the error is one of this system's
// not-user-catchable kinds.
func (e *Error) Fatal() bool { return !e.Report.Recoverable }

// New builds a user-recoverable Error.
func New(code Code, loc Loc, format string, args ...any) *Error {
	return &Error{Report: Report{Code: code, Loc: loc, Message: fmt.Sprintf(format, args...), Recoverable: true}}
}

// NewFatal builds a fatal Error, wrapping cause so its original
// message (e.g. from package equal's InvalidEqualTermError) survives.
func NewFatal(code Code, loc Loc, cause error) *Error {
	return &Error{Report: Report{Code: code, Loc: loc, Message: cause.Error(), Recoverable: false}, Cause: cause}
}

// Fataler is implemented by any error that knows whether it is fatal,
// including this package's own *Error, jdg.ImpossibleError, and
// package equal's Invalid* errors.
type Fataler interface {
	Fatal() bool
}

// IsFatal reports whether err is marked fatal, defaulting to false
// (user-recoverable) for plain errors that don't implement Fataler —
// an unannotated error from, say, a builtin function is a Runtime
// error, not a kernel-soundness one.
func IsFatal(err error) bool {
	f, ok := err.(Fataler)
	return ok && f.Fatal()
}

// Coder is implemented by error types that know their own diagnostic
// code (package jdg's ImpossibleError and package equal's Invalid*
// errors all implement it); errors that don't are classified as a
// generic Typing or Impossible report depending on Fatal().
type Coder interface {
	Code() Code
}

// ClassifyAndWrap turns a raw error from package equal or package jdg
// into a Report-carrying *Error with the matching code, leaving
// already-wrapped *Error values untouched.
func ClassifyAndWrap(err error, loc Loc) *Error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		return e
	}
	fatal := IsFatal(err)
	code := CodeTypingMismatch
	if fatal {
		code = CodeImpossible
	}
	if c, ok := err.(Coder); ok {
		code = c.Code()
	}
	return &Error{Report: Report{Code: code, Loc: loc, Message: err.Error(), Recoverable: !fatal}, Cause: err}
}
