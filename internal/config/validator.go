package config

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/texhue/texhue/internal/theme"
	texerrors "github.com/texhue/texhue/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	sshGitPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+:[a-zA-Z0-9._/~-]+$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("theme_name", func(fl validator.FieldLevel) bool {
			_, ok := theme.BuiltinThemes[theme.Name(fl.Field().String())]
			return ok
		})

		_ = v.RegisterValidation("git_url", func(fl validator.FieldLevel) bool {
			urlStr := fl.Field().String()
			if strings.TrimSpace(urlStr) == "" {
				return false
			}

			if parsedURL, err := url.Parse(urlStr); err == nil {
				scheme := strings.ToLower(parsedURL.Scheme)
				if (scheme == "http" || scheme == "https") && parsedURL.Host != "" {
					return true
				}
			}

			if sshGitPattern.MatchString(urlStr) {
				return true
			}

			return isValidFilePath(urlStr)
		})

		validateInst = v
	})

	return validateInst
}

// Validate performs schema validation on the configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return texerrors.NewValidationError("config", "configuration is nil", nil)
	}

	if err := validatorInstance().Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	return nil
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := strings.ToLower(ve.Field())
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return texerrors.NewValidationError(field, msg, err)
	}

	return texerrors.NewValidationError("config", err.Error(), err)
}

// isValidFilePath performs syntactic validation of local paths without
// touching the filesystem. Only absolute and explicitly-relative forms
// qualify.
func isValidFilePath(path string) bool {
	if path == "" || strings.Contains(path, "\x00") {
		return false
	}

	if strings.HasPrefix(path, "/") {
		return !strings.Contains(path, "/../") && !strings.HasSuffix(path, "/..")
	}

	return strings.HasPrefix(path, "./") || strings.HasPrefix(path, "../")
}
