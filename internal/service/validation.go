package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/dtroode/authkeeper/internal/apierror"
)

const (
	maxPasswordChars = 100
	maxPasswordBytes = 72
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	phonePattern    = regexp.MustCompile(`^[0-9+\-\s()]+$`)
	keyNamePattern  = regexp.MustCompile(`^[a-zA-Z0-9\s_-]+$`)
)

// Validator checks request structs and turns failures into field-level messages.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// NewValidator creates a Validator with the credential-specific rules registered.
func NewValidator() *Validator {
	v := &Validator{validate: validator.New(validator.WithRequiredStructEnabled()), now: time.Now}

	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v.validate, "username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	mustRegister(v.validate, "phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	mustRegister(v.validate, "keyname", func(fl validator.FieldLevel) bool {
		return keyNamePattern.MatchString(fl.Field().String())
	})
	mustRegister(v.validate, "scope", func(fl validator.FieldLevel) bool {
		return isScope(fl.Field().String())
	})
	mustRegister(v.validate, "password", func(fl validator.FieldLevel) bool {
		return len(passwordProblems(fl.Field().String())) == 0
	})
	mustRegister(v.validate, "future", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		return ok && t.After(v.now())
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

// Struct validates s and returns a ValidationFailed APIError listing every problem.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("invalid validation input: %w", err)
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		messages = append(messages, fieldMessages(fe)...)
	}
	return apierror.NewErrValidation(messages)
}

func fieldMessages(fe validator.FieldError) []string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return []string{fmt.Sprintf("%s is required", field)}
	case "email":
		return []string{fmt.Sprintf("%s must be a valid email address", field)}
	case "min":
		if fe.Kind() == reflect.Slice {
			return []string{fmt.Sprintf("at least %s %s must be specified", fe.Param(), field)}
		}
		return []string{fmt.Sprintf("%s must be at least %s characters", field, fe.Param())}
	case "max":
		return []string{fmt.Sprintf("%s cannot exceed %s characters", field, fe.Param())}
	case "username":
		return []string{fmt.Sprintf("%s can only contain letters, numbers, underscores, and hyphens", field)}
	case "phone":
		return []string{fmt.Sprintf("%s contains invalid characters", field)}
	case "keyname":
		return []string{fmt.Sprintf("%s can only contain letters, numbers, spaces, underscores, and hyphens", field)}
	case "scope":
		return []string{"scopes can only contain letters, numbers, underscores, and hyphens"}
	case "password":
		problems := passwordProblems(fmt.Sprint(fe.Value()))
		out := make([]string, 0, len(problems))
		for _, p := range problems {
			out = append(out, fmt.Sprintf("%s %s", field, p))
		}
		return out
	case "future":
		return []string{fmt.Sprintf("%s must be in the future", field)}
	case "url":
		return []string{fmt.Sprintf("%s must be a valid URL", field)}
	case "uuid":
		return []string{fmt.Sprintf("%s must be a valid UUID", field)}
	default:
		return []string{fmt.Sprintf("%s is invalid", field)}
	}
}

func passwordProblems(p string) []string {
	var problems []string
	n := len([]rune(p))
	if n < 8 {
		problems = append(problems, "must be at least 8 characters")
	}
	// bcrypt reads at most 72 bytes, which multibyte input reaches well below 100 characters.
	switch {
	case n > maxPasswordChars:
		problems = append(problems, fmt.Sprintf("cannot exceed %d characters", maxPasswordChars))
	case len(p) > maxPasswordBytes:
		problems = append(problems, fmt.Sprintf("cannot exceed %d bytes", maxPasswordBytes))
	}

	var upper, lower, digit, special bool
	for _, r := range p {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			special = true
		}
	}
	if !upper {
		problems = append(problems, "must contain at least one uppercase letter")
	}
	if !lower {
		problems = append(problems, "must contain at least one lowercase letter")
	}
	if !digit {
		problems = append(problems, "must contain at least one number")
	}
	if !special {
		problems = append(problems, "must contain at least one special character")
	}
	return problems
}

func isScope(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' {
			return false
		}
	}
	return true
}
