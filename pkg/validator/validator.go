// Package validator extends validator.Validate with the validation rules the
// API input types rely on: "notblank" for names that must survive trimming,
// and "mediatype" for the upload content-type policy.
package validator

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate is a custom validator that extends the base validator.Validate.
type Validate struct {
	validator.Validate
}

// New creates a new instance of Validate
func New() *Validate {
	validate := &Validate{
		Validate: *validator.New(),
	}

	if err := validate.RegisterValidation("notblank", validateNotBlank); err != nil {
		log.Fatalf("failed to register notblank validator: %s", err)
	}
	if err := validate.RegisterValidation("mediatype", validateMediaType); err != nil {
		log.Fatalf("failed to register mediatype validator: %s", err)
	}

	return validate
}

// validateNotBlank rejects strings that are empty after trimming whitespace.
func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// validateMediaType accepts any image/* content type and application/pdf,
// the only media kinds the upload endpoints allow.
func validateMediaType(fl validator.FieldLevel) bool {
	mediaType := fl.Field().String()
	return strings.HasPrefix(mediaType, "image/") || mediaType == "application/pdf"
}
