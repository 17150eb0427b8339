package style

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/texhue/texhue/internal/hexcolor"
	texerrors "github.com/texhue/texhue/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	// Comma list of ordinals or inclusive ranges: "2", "1,3", "2-5,8".
	occurrencesPattern = regexp.MustCompile(`^[0-9]+(?:-[0-9]+)?(?:,[0-9]+(?:-[0-9]+)?)*$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("shorthandhex", func(fl validator.FieldLevel) bool {
			return hexcolor.ValidShorthand(fl.Field().String())
		})

		_ = v.RegisterValidation("occurrences", func(fl validator.FieldLevel) bool {
			return occurrencesPattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// GetValidator returns the configured validator instance for use outside the
// style package.
func GetValidator() *validator.Validate {
	return validatorInstance()
}

// ValidOccurrences reports whether s is a well-formed occurrence selector:
// a comma list of ordinals or inclusive ranges. The empty selector is valid
// and means "every occurrence".
func ValidOccurrences(s string) bool {
	return s == "" || occurrencesPattern.MatchString(s)
}

// ValidateDocument performs schema validation on the document and reports
// the first offending field by its positional address.
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return texerrors.NewValidationError("document", "document is nil", nil)
	}

	if doc.Version != DocumentVersion {
		return texerrors.NewValidationError("version", fmt.Sprintf("unsupported document version %q", doc.Version), nil)
	}

	v := validatorInstance()
	for i, record := range doc.Styles {
		if err := v.Struct(record); err != nil {
			return convertValidationError(i, err)
		}
	}

	return nil
}

// ValidateRecord validates a single rule independent of document position.
func ValidateRecord(record Record) error {
	if err := validatorInstance().Struct(record); err != nil {
		return convertValidationError(-1, err)
	}
	return nil
}

func convertValidationError(index int, err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := strings.ToLower(ve.Field())
		if index >= 0 {
			field = fmt.Sprintf("styles[%d].%s", index, field)
		}
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return texerrors.NewValidationError(field, msg, err)
	}

	return texerrors.NewValidationError("document", err.Error(), err)
}
