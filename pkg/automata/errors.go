/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: errors.go
Description: Structured error kinds for the register automata engine. Every
fatal condition carries a kind and a human-readable message; callers match
on the kind sentinels with errors.Is and abort the run. None of these are
retried - rerunning a deterministic algorithm on the same input cannot
change the outcome.
*/

package automata

import (
	"errors"
	"fmt"
)

// Kind sentinels. Errors produced by this module wrap exactly one of these.
var (
	// ErrParse marks a malformed DRA or sample text input.
	ErrParse = errors.New("parse error")
	// ErrWellTyped marks a target automaton that is not complete and
	// deterministic; a required precondition for the active and
	// characteristic-sample modes.
	ErrWellTyped = errors.New("well-typedness violation")
	// ErrNoMatchingTransition marks a runtime violation of the matching
	// invariant: no transition, or more than one, matched a configuration
	// and input. A malformed automaton slipped past validation.
	ErrNoMatchingTransition = errors.New("no matching transition")
	// ErrOracleContract marks an oracle returning mutually inconsistent
	// answers for identical queries.
	ErrOracleContract = errors.New("oracle contract violation")
	// ErrModeConflict marks more than one learning mode requested at once.
	ErrModeConflict = errors.New("mode conflict")
)

// Error is a structured engine error: a kind sentinel plus context.
type Error struct {
	Kind error
	Msg  string
}

// Error returns the human-readable message prefixed by the kind.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

// Unwrap exposes the kind sentinel to errors.Is.
func (e *Error) Unwrap() error {
	return e.Kind
}

// NewError builds a structured error of the given kind.
func NewError(kind error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
