package validator

import (
	"html"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/unicode/norm"
)

var (
	validate  *validator.Validate
	sanitizer = bluemonday.StrictPolicy()

	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	spaceRegex = regexp.MustCompile(`\s+`)
)

func Init() {
	validate = validator.New()

	registerCustomValidations(validate)

	if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
		registerCustomValidations(engine)
	}
}

func registerCustomValidations(v *validator.Validate) {
	_ = v.RegisterValidation("no_html", validateNoHTML)
}

func Validate(s interface{}) error {
	if validate == nil {
		Init()
	}
	return validate.Struct(s)
}

// SanitizeString strips every HTML element from s.
func SanitizeString(s string) string {
	return sanitizer.Sanitize(s)
}

// CleanText strips markup from s, collapses runs of whitespace and puts the
// result in Unicode NFC form. Ampersands are escaped before sanitizing so
// entity-like text such as "&amp;" survives the decode of the sanitizer
// output verbatim; templates escape on output.
func CleanText(s string) string {
	cleaned := html.UnescapeString(SanitizeString(strings.ReplaceAll(s, "&", "&amp;")))
	return strings.TrimSpace(NormalizeSpaces(norm.NFC.String(cleaned)))
}

func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func NormalizeSpaces(s string) string {
	return spaceRegex.ReplaceAllString(s, " ")
}

func validateNoHTML(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return !strings.Contains(value, "<") && !strings.Contains(value, ">")
}
