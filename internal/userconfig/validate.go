package userconfig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrRequiredFields = errors.New("please fill all required fields")

var validate = validator.New()

// Validate checks that the debrid key, the metadata key and the max size are set.
func Validate(c *Configuration) error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %s", ErrRequiredFields, strings.Join(MissingFields(fieldErrs), ", "))
	}

	return err
}

// MissingFields lists the JSON names of the fields that failed validation.
func MissingFields(errs validator.ValidationErrors) []string {
	names := make([]string, 0, len(errs))
	for _, fe := range errs {
		names = append(names, jsonFieldNames[fe.StructField()])
	}

	return names
}

var jsonFieldNames = map[string]string{
	"DebridKey": "debridKey",
	"TMDBAPI":   "tmdbApi",
	"MaxSize":   "maxSize",
}
