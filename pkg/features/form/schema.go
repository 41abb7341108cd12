package form

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/vango-dev/refstore/internal/errors"
)

// Field is a named value with its validators, run in order.
type Field struct {
	Name       string
	Validators []Validator

	// requiredMsg and invalidMsg are the defaults for empty messages.
	requiredMsg string
	invalidMsg  string
}

// String declares a string field.
func String(name string, validators ...Validator) Field {
	return Field{
		Name:        name,
		Validators:  validators,
		requiredMsg: name + " is a required field",
		invalidMsg:  name + " is invalid",
	}
}

// Validate runs the field's validators and returns the first failure.
func (f Field) Validate(value any) *ValidationError {
	for i, v := range f.Validators {
		err := v.Validate(value)
		if err == nil {
			continue
		}

		ve := ValidationError{Field: f.Name, Message: err.Error()}
		if ve.Message == "" {
			ve.Message = f.invalidMsg
			if i == 0 && isEmpty(value) {
				ve.Message = f.requiredMsg
			}
		}
		return &ve
	}
	return nil
}

// Schema validates a set of named fields.
type Schema struct {
	fields []Field
}

// Object declares a schema from its fields.
func Object(fields ...Field) *Schema {
	return &Schema{fields: fields}
}

// Fields returns the declared field names in order.
func (s *Schema) Fields() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// Validate checks values and returns one error per failing field, in
// declaration order. Missing keys validate as nil.
func (s *Schema) Validate(values map[string]any) Errors {
	var errs Errors
	for _, f := range s.fields {
		if ve := f.Validate(values[f.Name]); ve != nil {
			errs = append(errs, *ve)
		}
	}
	return errs
}

// ValidateStruct validates the exported fields of v, matched by JSON name
// or Go field name.
func (s *Schema) ValidateStruct(v any) Errors {
	return s.Validate(structValues(v))
}

func structValues(v any) map[string]any {
	rv := reflect.Indirect(reflect.ValueOf(v))
	values := make(map[string]any)
	if rv.Kind() != reflect.Struct {
		return values
	}

	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		val := rv.Field(i).Interface()
		if f.Type.Kind() == reflect.String {
			val = rv.Field(i).String()
		}
		values[f.Name] = val
		if name, _, _ := strings.Cut(f.Tag.Get("json"), ","); name != "" && name != "-" {
			values[name] = val
		}
	}
	return values
}

// Errors is the set of field failures from one validation.
type Errors []ValidationError

// OK reports whether validation passed.
func (e Errors) OK() bool {
	return len(e) == 0
}

// Get returns the message for field, or "".
func (e Errors) Get(field string) string {
	for _, ve := range e {
		if ve.Field == field {
			return ve.Message
		}
	}
	return ""
}

// Map returns field -> message.
func (e Errors) Map() map[string]string {
	m := make(map[string]string, len(e))
	for _, ve := range e {
		m[ve.Field] = ve.Message
	}
	return m
}

// Err returns nil when validation passed, otherwise an E300 error listing
// every failing field.
func (e Errors) Err() error {
	if e.OK() {
		return nil
	}
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = fmt.Sprintf("%s: %s", ve.Field, ve.Message)
	}
	return errors.New("E300").WithDetail(strings.Join(msgs, "; "))
}
