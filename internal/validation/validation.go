// Package validation turns request decoding and struct-rule failures into a
// field-keyed error payload listing every violated constraint.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	return v
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

// Errors is the payload returned under "error" for a rejected write.
type Errors struct {
	FormErrors  []string            `json:"formErrors"`
	FieldErrors map[string][]string `json:"fieldErrors"`
}

func New() *Errors {
	return &Errors{
		FormErrors:  []string{},
		FieldErrors: map[string][]string{},
	}
}

func (e *Errors) Empty() bool {
	return len(e.FormErrors) == 0 && len(e.FieldErrors) == 0
}

func (e *Errors) AddForm(msg string) {
	e.FormErrors = append(e.FormErrors, msg)
}

func (e *Errors) AddField(field, msg string) {
	e.FieldErrors[field] = append(e.FieldErrors[field], msg)
}

func (e *Errors) Error() string {
	parts := make([]string, 0, len(e.FormErrors)+len(e.FieldErrors))
	parts = append(parts, e.FormErrors...)
	for field, msgs := range e.FieldErrors {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(msgs, ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Decode reads a single JSON object from body into dst. An empty body
// decodes as {}. Each field is decoded on its own so every type mismatch
// (including an explicit null) is recorded against its field; it returns
// false only when the body is not one JSON object at all.
func (e *Errors) Decode(body io.Reader, dst any) bool {
	dec := json.NewDecoder(body)

	var raw json.RawMessage
	err := dec.Decode(&raw)
	if errors.Is(err, io.EOF) {
		return true
	}
	if err != nil {
		return e.readFailure(err)
	}

	// Anything but whitespace after the object is rejected.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return e.readFailure(err)
		}
		e.AddForm("Malformed JSON body")
		return false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		e.AddForm(fmt.Sprintf("Expected object, received %s", rawKind(raw)))
		return false
	}

	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		if err := json.Unmarshal(raw, dst); err != nil {
			e.AddForm("Malformed JSON body")
			return false
		}
		return true
	}

	v = v.Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		name := jsonFieldName(sf)
		if name == "" || !sf.IsExported() {
			continue
		}

		value, ok := fields[name]
		if !ok {
			continue
		}

		received := rawKind(value)
		if received == "null" {
			e.AddField(name, fmt.Sprintf("Expected %s, received null", jsonKind(sf.Type)))
			continue
		}

		if err := json.Unmarshal(value, v.Field(i).Addr().Interface()); err != nil {
			e.AddField(name, fmt.Sprintf("Expected %s, received %s", jsonKind(sf.Type), received))
		}
	}

	return true
}

func (e *Errors) readFailure(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		e.AddForm("Request body too large")
		return false
	}

	e.AddForm("Malformed JSON body")
	return false
}

// Struct runs the validate tags of v and records every failure. Fields that
// already carry a decoding error are skipped so they are not reported twice.
func (e *Errors) Struct(v any) {
	err := validate.Struct(v)
	if err == nil {
		return
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		e.AddForm(err.Error())
		return
	}

	decodeFailed := make(map[string]bool, len(e.FieldErrors))
	for field := range e.FieldErrors {
		decodeFailed[field] = true
	}

	for _, fe := range fieldErrs {
		if decodeFailed[fe.Field()] {
			continue
		}
		e.AddField(fe.Field(), message(fe))
	}
}

func message(fe validator.FieldError) string {
	kind := fe.Kind()
	if kind == reflect.Ptr {
		kind = fe.Type().Elem().Kind()
	}

	switch fe.Tag() {
	case "required":
		return "Required"
	case "email":
		return "Invalid email"
	case "min":
		if kind == reflect.String {
			return fmt.Sprintf("String must contain at least %s character(s)", fe.Param())
		}
		return fmt.Sprintf("Number must be greater than or equal to %s", fe.Param())
	case "max":
		if kind == reflect.String {
			return fmt.Sprintf("String must contain at most %s character(s)", fe.Param())
		}
		return fmt.Sprintf("Number must be less than or equal to %s", fe.Param())
	}
	return fmt.Sprintf("Failed %s validation", fe.Tag())
}

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "array"
	}
	return "object"
}

// rawKind names the JSON type of an encoded value.
func rawKind(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return "undefined"
	}

	switch trimmed[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	}
	return "number"
}
