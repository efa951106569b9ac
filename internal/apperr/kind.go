package apperr

import "errors"

const (
	KindDuplicateEntry  = "duplicate_entry"
	KindMalformedRecord = "malformed_record"
	KindEmptyPopulation = "empty_population"
	KindValidation      = "validation"
	KindInternal        = "internal"
)

// Kind names the failure class of err, for metrics labels and exit codes.
func Kind(err error) string {
	var (
		de *DuplicateEntryError
		me *MalformedRecordError
		ve *ValidationError
	)
	switch {
	case errors.As(err, &de):
		return KindDuplicateEntry
	case errors.As(err, &me):
		return KindMalformedRecord
	case errors.Is(err, ErrEmptyPopulation):
		return KindEmptyPopulation
	case errors.As(err, &ve):
		return KindValidation
	}
	return KindInternal
}
