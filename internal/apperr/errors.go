package apperr

import (
	"errors"
	"fmt"
)

// ErrEmptyPopulation is returned when no segment survives the population filter.
// It is distinct from a 0% precision result.
var ErrEmptyPopulation = errors.New("empty evaluation population")

type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// DuplicateEntryError reports a second score for the same (model, segment) pair,
// a second key entry for the same segment, or a repeated matrix column.
type DuplicateEntryError struct {
	Model   string
	Segment string
}

func (e *DuplicateEntryError) Error() string {
	switch {
	case e.Model == "":
		return fmt.Sprintf("duplicate entry for segment %q", e.Segment)
	case e.Segment == "":
		return fmt.Sprintf("duplicate entry for model %q", e.Model)
	}
	return fmt.Sprintf("duplicate entry for model %q, segment %q", e.Model, e.Segment)
}

func NewDuplicateEntry(model, segment string) *DuplicateEntryError {
	return &DuplicateEntryError{Model: model, Segment: segment}
}

// MalformedRecordError reports a record with the wrong field count or a score
// that is not a finite number. Line is 1-based; zero means unknown.
type MalformedRecordError struct {
	Line    int
	Record  string
	Message string
	Err     error
}

func (e *MalformedRecordError) Error() string {
	msg := "malformed record"
	if e.Line > 0 {
		msg = fmt.Sprintf("%s at line %d", msg, e.Line)
	}
	if e.Record != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Record)
	}
	msg += ": " + e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

func NewMalformed(record, msg string) *MalformedRecordError {
	return &MalformedRecordError{Record: record, Message: msg}
}

func NewMalformedWrap(record, msg string, err error) *MalformedRecordError {
	return &MalformedRecordError{Record: record, Message: msg, Err: err}
}

// AtLine attaches a 1-based line number to a malformed record error.
func AtLine(err error, line int) error {
	var me *MalformedRecordError
	if errors.As(err, &me) && me.Line == 0 {
		cp := *me
		cp.Line = line
		return &cp
	}
	return err
}
