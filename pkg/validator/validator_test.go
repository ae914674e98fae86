package validator

import (
	"testing"
)

type upload struct {
	Name      string `validate:"required,notblank"`
	MediaType string `validate:"required,mediatype"`
}

func TestValidation(t *testing.T) {
	validate := New()

	// Valid upload
	u := upload{
		Name:      "holiday.png",
		MediaType: "image/png",
	}

	err := validate.Struct(u)
	if err != nil {
		t.Errorf("Validation failed unexpectedly: %s", err.Error())
	}

	// PDF is the one non-image type allowed
	u = upload{
		Name:      "invoice.pdf",
		MediaType: "application/pdf",
	}

	err = validate.Struct(u)
	if err != nil {
		t.Errorf("Validation failed unexpectedly: %s", err.Error())
	}

	// Whitespace-only name
	u = upload{
		Name:      "   ",
		MediaType: "image/png",
	}

	err = validate.Struct(u)
	if err == nil {
		t.Error("Validation should have failed for blank name")
	}

	// Disallowed media type
	u = upload{
		Name:      "notes.txt",
		MediaType: "text/plain",
	}

	err = validate.Struct(u)
	if err == nil {
		t.Error("Validation should have failed for text/plain")
	}
}
