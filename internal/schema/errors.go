package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer renders the validator's localized error messages in English.
var printer = message.NewPrinter(language.English)

// extractValidationErrors flattens a validation error into deduplicated
// human-readable messages, one per instance path.
func extractValidationErrors(err error) []string {
	if err == nil {
		return nil
	}

	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return []string{err.Error()}
	}

	byPath := make(map[string]map[string]bool)
	var result []string
	collectErrors(validationErr, func(path, msg string) {
		if byPath[path] == nil {
			byPath[path] = make(map[string]bool)
		}
		if byPath[path][msg] {
			return
		}
		byPath[path][msg] = true
		if path != "" {
			result = append(result, fmt.Sprintf("%s: %s", path, msg))
		} else {
			result = append(result, msg)
		}
	})
	return result
}

// collectErrors walks to the leaf causes, which carry the concrete failures.
func collectErrors(err *jsonschema.ValidationError, emit func(path, msg string)) {
	path := ""
	if len(err.InstanceLocation) > 0 {
		path = "/" + strings.Join(err.InstanceLocation, "/")
	}

	if err.ErrorKind != nil && len(err.Causes) == 0 {
		msg := err.ErrorKind.LocalizedString(printer)
		// Schema-reference messages restate the failure without naming it.
		if !strings.HasPrefix(msg, "$ref ") && !strings.HasPrefix(msg, "doesn't validate with") {
			emit(path, msg)
		}
	}

	for _, cause := range err.Causes {
		collectErrors(cause, emit)
	}
}
