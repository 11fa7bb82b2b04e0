package services

import (
	"errors"
	"reflect"
	"strings"

	"NeuroScanAI/util"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Field errors report the json name of the field, not the Go one.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// fieldMessages maps "field.tag" or "field" to the message sent to clients.
type fieldMessages map[string]string

type messenger interface {
	fieldMessages() fieldMessages
}

/*
* Run the binding tags of in through gin's validator
* Report the first failing field
 */
func validateInput(in interface{}) error {
	if err := binding.Validator.ValidateStruct(in); err != nil {
		return InvalidInput(err, in)
	}
	return nil
}

// InvalidInput turns a bind or validation failure on in into a ValidationError.
func InvalidInput(err error, in interface{}) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Message: util.INVALID_REQUEST_BODY}
	}
	var msgs fieldMessages
	if m, ok := in.(messenger); ok {
		msgs = m.fieldMessages()
	}
	return fieldError(verrs[0], msgs)
}

func fieldError(fe validator.FieldError, msgs fieldMessages) *ValidationError {
	field := fe.Field()
	if msg, ok := msgs[field+"."+fe.Tag()]; ok {
		return &ValidationError{Field: field, Message: msg}
	}
	if msg, ok := msgs[field]; ok {
		return &ValidationError{Field: field, Message: msg}
	}
	return &ValidationError{Field: field, Message: field + " is invalid"}
}
