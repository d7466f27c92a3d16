package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/Taha-Code-Hup/OnoTime/internal/app/models"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// Register adds the domain tags to v and reports fields by their json names:
//
//	nationalid  9-digit national id
//	looseemail  something@something.something
//	filetype    pdf|ppt|doc|link|other
//	filestatus  pending|approved|rejected
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	rules := map[string]validator.Func{
		"nationalid": func(fl validator.FieldLevel) bool {
			return CompiledPatterns.NationalID.MatchString(fl.Field().String())
		},
		"looseemail": func(fl validator.FieldLevel) bool {
			return CompiledPatterns.Email.MatchString(fl.Field().String())
		},
		"filetype": func(fl validator.FieldLevel) bool {
			t := models.FileType(fl.Field().String())
			for _, known := range models.FileTypes {
				if t == known {
					return true
				}
			}
			return false
		},
		"filestatus": func(fl validator.FieldLevel) bool {
			s := models.FileStatus(fl.Field().String())
			for _, known := range models.FileStatuses {
				if s == known {
					return true
				}
			}
			return false
		},
	}

	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %s validation: %w", tag, err)
		}
	}
	return nil
}

// New returns a validator with the domain tags registered
func New() *validator.Validate {
	v := validator.New()
	if err := Register(v); err != nil {
		panic(err)
	}
	return v
}

// RegisterGin installs the domain tags on gin's binding validator, once
func RegisterGin() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("gin binding engine is %T, not a validator", binding.Validator.Engine())
			return
		}
		registerErr = Register(v)
	})
	return registerErr
}

// Messages converts validation errors into field -> message pairs
func Messages(err error) map[string]string {
	out := map[string]string{}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return out
	}
	for _, e := range errs {
		out[e.Field()] = message(e)
	}
	return out
}

// message creates a human-readable validation error message
func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email", "looseemail":
		return e.Field() + " must be a valid email address"
	case "nationalid":
		return e.Field() + " must be exactly 9 digits"
	case "filetype":
		return e.Field() + " must be one of: pdf, ppt, doc, link, other"
	case "filestatus":
		return e.Field() + " must be one of: pending, approved, rejected"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
