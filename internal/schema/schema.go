// Package schema checks assembled creator records before they are written.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"cr4te/internal/record"
)

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Violation describes one failed check.
type Violation struct {
	// Field is the JSON path below the creator, e.g. projects[0].release_date.
	Field string
	// Rule is the failed check, e.g. required or isodate.
	Rule  string
	Value any
}

func (v Violation) String() string {
	switch v.Rule {
	case "required":
		return v.Field + " is required"
	case "isodate":
		return fmt.Sprintf("%s must be empty or yyyy-mm-dd (got %v)", v.Field, v.Value)
	case "collab_members":
		return v.Field + " must list members when is_collaboration is true"
	case "solo_members":
		return v.Field + " must be empty when is_collaboration is false"
	case "unique":
		return v.Field + " contains duplicate keys"
	case "type":
		return fmt.Sprintf("%s has the wrong type (%v)", v.Field, v.Value)
	default:
		return fmt.Sprintf("%s failed %s", v.Field, v.Rule)
	}
}

// Error reports every violation found in one creator record.
type Error struct {
	Creator    string
	Violations []Violation
}

func (e *Error) Error() string {
	if len(e.Violations) == 0 {
		return fmt.Sprintf("creator %q: invalid record", e.Creator)
	}
	msg := fmt.Sprintf("creator %q: %s", e.Creator, e.Violations[0])
	if extra := len(e.Violations) - 1; extra > 0 {
		msg += fmt.Sprintf(" (and %d more)", extra)
	}
	return msg
}

// Field returns the path of the first violation.
func (e *Error) Field() string {
	if len(e.Violations) == 0 {
		return ""
	}
	return e.Violations[0].Field
}

// Validator checks creator records.
type Validator struct {
	validate *validator.Validate
}

// New returns a Validator with the record rules registered.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails for empty tags or nil functions.
	_ = v.RegisterValidation("isodate", isISODate)
	v.RegisterStructValidation(creatorMembers, record.Creator{})
	return &Validator{validate: v}
}

// Validate returns nil or a *Error naming every offending field of c.
func (v *Validator) Validate(c record.Creator) error {
	err := v.validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate creator %q: %w", c.Name, err)
	}
	out := &Error{Creator: c.Name}
	for _, fe := range fieldErrs {
		out.Violations = append(out.Violations, Violation{
			Field: fieldPath(fe.Namespace()),
			Rule:  fe.Tag(),
			Value: fe.Value(),
		})
	}
	return out
}

// ValidateJSON decodes a written record and validates it. Type mismatches are
// reported as violations with the rule "type".
func (v *Validator) ValidateJSON(data []byte) (record.Creator, error) {
	var c record.Creator
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&c); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return c, &Error{Creator: c.Name, Violations: []Violation{{
				Field: typeErr.Field,
				Rule:  "type",
				Value: typeErr.Value,
			}}}
		}
		return c, fmt.Errorf("decode record: %w", err)
	}
	return c, v.Validate(c)
}

func isISODate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if !isoDatePattern.MatchString(value) {
		return false
	}
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}

func creatorMembers(sl validator.StructLevel) {
	c, ok := sl.Current().Interface().(record.Creator)
	if !ok {
		return
	}
	switch {
	case c.IsCollaboration && len(c.Members) == 0:
		sl.ReportError(c.Members, "members", "Members", "collab_members", "")
	case !c.IsCollaboration && len(c.Members) > 0:
		sl.ReportError(c.Members, "members", "Members", "solo_members", "")
	}
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}
