// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package adf

import (
	"errors"
	"fmt"

	multierror "github.com/hashicorp/go-multierror"
)

// ConstructionError aggregates the problems found while building an ADF
// from a declaration list: empty or duplicate names and missing acceptance
// conditions, a counting-dependent heuristic on a Table without ad-hoc
// counters, or undefined names and unrecognized nodes in acceptance
// conditions. New fails atomically and checks in that order: all
// declaration-list problems are reported together, and acceptance
// conditions are only compiled (their problems reported together) when the
// earlier checks passed. An invalid obdd.Option is reported as a
// ProgrammingError instead.
type ConstructionError struct {
	merr *multierror.Error
}

func (e *ConstructionError) Error() string { return e.merr.Error() }
func (e *ConstructionError) Unwrap() error { return e.merr.ErrorOrNil() }

func newConstructionError(errs ...error) *ConstructionError {
	merr := &multierror.Error{}
	for _, err := range errs {
		merr = multierror.Append(merr, err)
	}
	return &ConstructionError{merr: merr}
}

// ProgrammingError reports a misuse of the ADF API: an unknown statement
// name, a Term that does not belong to the ADF's Table, or similar faults
// that are never recoverable at runtime.
type ProgrammingError struct {
	Op  string
	Err error
}

func (e *ProgrammingError) Error() string {
	return fmt.Sprintf("adf: programming error in %s: %s", e.Op, e.Err)
}

func (e *ProgrammingError) Unwrap() error { return e.Err }

func newProgrammingError(op string, format string, args ...interface{}) *ProgrammingError {
	return &ProgrammingError{Op: op, Err: fmt.Errorf(format, args...)}
}

// ErrCancelled is carried by StableSolveAsync's error channel when the
// caller's context was cancelled before the search exhausted. It is not an
// error in the usual sense: the search simply stopped early, cleanly, with
// no partial side effect on the ADF. Callers that only care about results
// can safely ignore it with errors.Is.
var ErrCancelled = errors.New("adf: solve cancelled")
