package validation

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"sharvari-site/internal/shared/errors"

	"github.com/go-playground/validator/v10"
)

// Custom tags.
const (
	TagSiteEmail = "siteemail"
	TagMobile    = "mobile10"
)

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

// IsEmail reports whether s looks like local@domain.tld.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsMobile reports whether s is exactly ten digits.
func IsMobile(s string) bool {
	return mobilePattern.MatchString(s)
}

// Messages maps "field.tag" (or just "tag") to the text shown for a failure.
type Messages map[string]string

// Validator checks request structs and reports failures per json field.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the site's custom tags registered.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := registerTags(v, map[string]func(string) bool{
		TagSiteEmail: IsEmail,
		TagMobile:    IsMobile,
	}); err != nil {
		panic(err)
	}
	return &Validator{validate: v}
}

func registerTags(v *validator.Validate, tags map[string]func(string) bool) error {
	for tag, check := range tags {
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return check(fl.Field().String())
		}); err != nil {
			return fmt.Errorf("register validation tag %q: %w", tag, err)
		}
	}
	return nil
}

// Struct validates s. Failures come back as a validation AppError whose
// message is the first failure and whose details list every field.
func (v *Validator) Struct(s interface{}, messages Messages) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.NewValidationError("Invalid request").WithCause(err)
	}

	ve := errors.NewValidationErrors()
	for _, fe := range fieldErrs {
		ve.Add(fe.Field(), messages.lookup(fe.Field(), fe.Tag()), fe.Value())
	}
	return ve.ToAppError()
}

func (m Messages) lookup(field, tag string) string {
	if msg, ok := m[field+"."+tag]; ok {
		return msg
	}
	if msg, ok := m[tag]; ok {
		return msg
	}
	if tag == "required" {
		return field + " is required"
	}
	return field + " is invalid"
}

// FieldErrors returns the per-field messages carried by a validation error.
func FieldErrors(err error) map[string]string {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		return nil
	}
	list, ok := appErr.Details["validation_errors"].([]errors.ValidationError)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(list))
	for _, fe := range list {
		if _, seen := out[fe.Field]; !seen {
			out[fe.Field] = fe.Message
		}
	}
	return out
}
