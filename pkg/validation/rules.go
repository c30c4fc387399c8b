package validation

import (
	"math"
	"strconv"
	"strings"

	"go-candidate-admin/internal/domain"

	"github.com/go-playground/validator/v10"
)

// Messages shown next to a field.
const (
	MsgName          = "Name must contain only letters and up to 2 spaces."
	MsgNameLength    = "Name cannot exceed 100 characters."
	MsgGender        = "Gender must contain only letters."
	MsgGenderLength  = "Gender cannot exceed 10 characters."
	MsgEmail         = "Email is not in a valid format."
	MsgEmailLength   = "Email cannot exceed 100 characters."
	MsgDOBFormat     = "Date of Birth must be a valid date."
	MsgDOBRange      = "Date of Birth must be between 1999 and 2002."
	MsgPlace         = "Place must contain only letters and one space."
	MsgPlaceLength   = "Place cannot exceed 200 characters."
	MsgPhone         = "Phone number must be exactly 10 digits and contain no spaces or special characters."
	MsgEducation     = "Education qualification must contain only letters and up to 4 spaces."
	MsgEducationLen  = "Highest Education Qualification cannot exceed 50 characters."
	MsgYearNumber    = "Passout Year must be a whole number."
	MsgYearRange     = "Passout Year must be between 2020 and 2024."
	MsgMarksNumber   = "Marks obtained percentage must be a number."
	MsgMarksRange    = "Marks obtained percentage must be between 0 and 100."
	MsgResumeType    = "Resume must be a .pdf, .doc or .docx file."
	msgRequiredTrail = " is required."
)

type check struct {
	tag string
	msg string
}

// stringRules are evaluated in order, the first failing check wins.
var stringRules = map[domain.Field][]check{
	domain.FieldName: {
		{"candidate_name", MsgName},
		{"max=100", MsgNameLength},
	},
	domain.FieldGender: {
		{"alpha", MsgGender},
		{"max=10", MsgGenderLength},
	},
	domain.FieldEmail: {
		{"candidate_email", MsgEmail},
		{"max=100", MsgEmailLength},
	},
	domain.FieldDOB: {
		{"iso_date", MsgDOBFormat},
		{"dob_range", MsgDOBRange},
	},
	domain.FieldPlace: {
		{"candidate_place", MsgPlace},
		{"max=200", MsgPlaceLength},
	},
	domain.FieldPhoneNumber: {
		{"len=10,number", MsgPhone},
	},
	domain.FieldHighestEducationQualification: {
		{"education", MsgEducation},
		{"max=50", MsgEducationLen},
	},
	domain.FieldResume: {
		{"resume_ext", MsgResumeType},
	},
}

var std = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// Validate returns the error message for one field value, or "" when valid.
// Fields are checked independently of each other.
func Validate(field domain.Field, raw string) string {
	switch field {
	case domain.FieldQualificationPassoutYear:
		year, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return MsgYearNumber
		}
		if std.Var(year, "gte=2020,lte=2024") != nil {
			return MsgYearRange
		}
		return ""
	case domain.FieldMarksObtainedPercentage:
		raw = strings.TrimSpace(raw)
		if !decimalRegex.MatchString(raw) {
			return MsgMarksNumber
		}
		marks, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(marks) || math.IsInf(marks, 0) {
			return MsgMarksNumber
		}
		if std.Var(marks, "gte=0,lte=100") != nil {
			return MsgMarksRange
		}
		return ""
	case domain.FieldHaveAnyExperience:
		return ""
	}

	for _, c := range stringRules[field] {
		if std.Var(raw, c.tag) != nil {
			return c.msg
		}
	}
	return ""
}

// Required reports whether a field must be filled in before submitting.
// The resume is only required when creating a candidate.
func Required(field domain.Field, creating bool) bool {
	switch field {
	case domain.FieldHaveAnyExperience:
		return false
	case domain.FieldResume:
		return creating
	}
	return true
}

func RequiredMessage(field domain.Field) string {
	return field.Label() + msgRequiredTrail
}

// ValidateRecord checks every field of a complete record. The resume is
// validated separately since a record only carries a stored reference.
func ValidateRecord(r domain.CandidateRecord) Errors {
	var errs Errors
	for _, f := range domain.Fields {
		if f == domain.FieldResume {
			continue
		}
		raw := r.FieldValue(f)
		if raw == "" && Required(f, false) {
			errs = errs.With(f, RequiredMessage(f))
			continue
		}
		errs = errs.With(f, Validate(f, raw))
	}
	return errs
}
