package serializers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/devteams/devteams-server/utils-go"
)

var ErrValidation = errors.New("validation failed")

const (
	TagRequired = "required"
	TagNotFound = "not_found"
	TagUnique   = "unique"
)

// ValidationError lists every field that failed. Nothing has been written
// when it is returned.
type ValidationError struct {
	Errors []*utils.ErrorResponse
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %d invalid field(s)", ErrValidation, len(e.Errors))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func (e *ValidationError) add(field, tag, value string) {
	e.Errors = append(e.Errors, &utils.ErrorResponse{
		FailedField: field,
		Tag:         tag,
		Value:       value,
	})
}

func (e *ValidationError) notFound(field string, id int64) {
	e.add(field, TagNotFound, strconv.FormatInt(id, 10))
}

func (e *ValidationError) orNil() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// structErrors runs the validator tags of input and seeds a ValidationError
// with the result.
func structErrors(validate interface{ Struct(interface{}) error }, input interface{}) *ValidationError {
	return &ValidationError{Errors: utils.ValidateStruct(validate.Struct(input))}
}
