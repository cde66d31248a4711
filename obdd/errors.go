// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package obdd

import (
	"fmt"

	multierror "github.com/hashicorp/go-multierror"
)

// ProgrammingError reports a misuse of the Table API: an out-of-range
// variable index, a Term that does not belong to the Table, or a feature
// used without enabling its prerequisite option (e.g. requesting model
// counts without ad-hoc counting). These are not recoverable at runtime; a
// Table that returned one should not be used further.
type ProgrammingError struct {
	Op  string
	Err error
}

func (e *ProgrammingError) Error() string {
	return fmt.Sprintf("obdd: programming error in %s: %s", e.Op, e.Err)
}

func (e *ProgrammingError) Unwrap() error { return e.Err }

func newProgrammingError(op string, format string, args ...interface{}) *ProgrammingError {
	return &ProgrammingError{Op: op, Err: fmt.Errorf(format, args...)}
}

// ConfigError reports one or more invalid construction-time options passed to
// New. Multiple problems are aggregated with go-multierror so New fails
// atomically and reports everything wrong at once.
type ConfigError struct {
	merr *multierror.Error
}

func (e *ConfigError) Error() string { return e.merr.Error() }
func (e *ConfigError) Unwrap() error { return e.merr.ErrorOrNil() }

func newConfigError() *configErrorBuilder {
	return &configErrorBuilder{merr: &multierror.Error{}}
}

type configErrorBuilder struct {
	merr *multierror.Error
}

func (b *configErrorBuilder) add(format string, args ...interface{}) {
	b.merr = multierror.Append(b.merr, fmt.Errorf(format, args...))
}

func (b *configErrorBuilder) build() error {
	if len(b.merr.Errors) == 0 {
		return nil
	}
	return &ConfigError{merr: b.merr}
}

var (
	errMemory = fmt.Errorf("obdd: unable to grow the node table")
)
