package validation

import (
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// Letters and spaces, 1-100 characters
	nameRegex = regexp.MustCompile(`^[a-zA-Z ]{1,100}$`)

	// local@domain.tld, the "no consecutive dots" part is checked separately
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	// One or two words of letters
	placeRegex = regexp.MustCompile(`^[a-zA-Z]+( [a-zA-Z]+)?$`)

	educationRegex = regexp.MustCompile(`^[a-zA-Z ]{1,50}$`)

	// Plain decimal, no exponent or hex form
	decimalRegex = regexp.MustCompile(`^[+-]?\d+(\.\d+)?$`)
)

const dateLayout = "2006-01-02"

var (
	dobMin = time.Date(1999, time.January, 1, 0, 0, 0, 0, time.UTC)
	dobMax = time.Date(2002, time.December, 31, 0, 0, 0, 0, time.UTC)
)

var resumeExtensions = []string{".pdf", ".doc", ".docx"}

// RegisterValidators registers the candidate field validators on v
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("candidate_name", ValidName)
	_ = v.RegisterValidation("candidate_email", ValidEmail)
	_ = v.RegisterValidation("candidate_place", ValidPlace)
	_ = v.RegisterValidation("education", ValidEducation)
	_ = v.RegisterValidation("iso_date", ValidISODate)
	_ = v.RegisterValidation("dob_range", DOBInRange)
	_ = v.RegisterValidation("resume_ext", ResumeExtension)
}

func ValidName(fl validator.FieldLevel) bool {
	return nameRegex.MatchString(fl.Field().String())
}

func ValidEmail(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if strings.Contains(val, "..") {
		return false
	}
	return emailRegex.MatchString(val)
}

func ValidPlace(fl validator.FieldLevel) bool {
	return placeRegex.MatchString(fl.Field().String())
}

func ValidEducation(fl validator.FieldLevel) bool {
	return educationRegex.MatchString(fl.Field().String())
}

// ValidISODate accepts calendar dates in YYYY-MM-DD form
func ValidISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse(dateLayout, fl.Field().String())
	return err == nil
}

// DOBInRange checks the date of birth against the accepted window (inclusive)
func DOBInRange(fl validator.FieldLevel) bool {
	dob, err := time.Parse(dateLayout, fl.Field().String())
	if err != nil {
		return false
	}
	return !dob.Before(dobMin) && !dob.After(dobMax)
}

// ResumeExtension validates the uploaded file name against pdf/doc/docx
func ResumeExtension(fl validator.FieldLevel) bool {
	name := strings.ToLower(fl.Field().String())
	for _, ext := range resumeExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// AllowedResumeExtensions returns the accepted resume extensions, e.g. for an
// <input accept=...> attribute.
func AllowedResumeExtensions() []string {
	out := make([]string, len(resumeExtensions))
	copy(out, resumeExtensions)
	return out
}
