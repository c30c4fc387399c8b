package validation_test

import (
	"strings"
	"testing"

	"go-candidate-admin/internal/domain"
	"go-candidate-admin/pkg/validation"

	"github.com/stretchr/testify/assert"
)

func TestValidateName(t *testing.T) {
	valid := []string{"John Doe", "a", "amrutha nair", strings.Repeat("a", 100), "   "}
	for _, v := range valid {
		assert.Empty(t, validation.Validate(domain.FieldName, v), v)
	}

	invalid := []string{"", "John2", "R2D2", strings.Repeat("a", 101), "Jean-Luc", "Zoë"}
	for _, v := range invalid {
		assert.NotEmpty(t, validation.Validate(domain.FieldName, v), v)
	}
	assert.Equal(t, validation.MsgName, validation.Validate(domain.FieldName, "John2"))
}

func TestValidateGender(t *testing.T) {
	for _, g := range domain.Genders {
		assert.Empty(t, validation.Validate(domain.FieldGender, g))
	}
	assert.Equal(t, validation.MsgGender, validation.Validate(domain.FieldGender, "M4le"))
	assert.Equal(t, validation.MsgGender, validation.Validate(domain.FieldGender, ""))
	assert.Equal(t, validation.MsgGenderLength, validation.Validate(domain.FieldGender, "Abcdefghijk"))
}

func TestValidateEmail(t *testing.T) {
	assert.Empty(t, validation.Validate(domain.FieldEmail, "john@doe.com"))
	assert.Empty(t, validation.Validate(domain.FieldEmail, "j.o_h+n%1@mail.example.org"))

	for _, v := range []string{"john..doe@doe.com", "john@doe..com", "john@doe", "@doe.com", "john@doe.c", "john doe@doe.com"} {
		assert.Equal(t, validation.MsgEmail, validation.Validate(domain.FieldEmail, v), v)
	}

	long := strings.Repeat("a", 95) + "@b.com"
	assert.Equal(t, validation.MsgEmailLength, validation.Validate(domain.FieldEmail, long))
}

func TestValidateDOB(t *testing.T) {
	assert.Empty(t, validation.Validate(domain.FieldDOB, "2000-05-01"))
	assert.Empty(t, validation.Validate(domain.FieldDOB, "1999-01-01"))
	assert.Empty(t, validation.Validate(domain.FieldDOB, "2002-12-31"))

	assert.Equal(t, validation.MsgDOBRange, validation.Validate(domain.FieldDOB, "1998-12-31"))
	assert.Equal(t, validation.MsgDOBRange, validation.Validate(domain.FieldDOB, "2003-01-01"))
	assert.Equal(t, validation.MsgDOBFormat, validation.Validate(domain.FieldDOB, "01/05/2000"))
	assert.Equal(t, validation.MsgDOBFormat, validation.Validate(domain.FieldDOB, "not a date"))
}

func TestValidatePlace(t *testing.T) {
	assert.Empty(t, validation.Validate(domain.FieldPlace, "Austin"))
	assert.Empty(t, validation.Validate(domain.FieldPlace, "New York"))
	assert.Equal(t, validation.MsgPlace, validation.Validate(domain.FieldPlace, "Salt Lake City"))
	assert.Equal(t, validation.MsgPlace, validation.Validate(domain.FieldPlace, "Austin "))
	assert.Equal(t, validation.MsgPlace, validation.Validate(domain.FieldPlace, "Area51"))
	assert.Equal(t, validation.MsgPlaceLength, validation.Validate(domain.FieldPlace, strings.Repeat("a", 201)))
}

func TestValidatePhone(t *testing.T) {
	assert.Empty(t, validation.Validate(domain.FieldPhoneNumber, "5551234567"))
	assert.Empty(t, validation.Validate(domain.FieldPhoneNumber, "0000000000"))

	for _, v := range []string{"555123456", "55512345678", "555-123-456", "555 123 4567", "+555123456", "abcdefghij", ""} {
		assert.Equal(t, validation.MsgPhone, validation.Validate(domain.FieldPhoneNumber, v), v)
	}
}

func TestValidateEducation(t *testing.T) {
	assert.Empty(t, validation.Validate(domain.FieldHighestEducationQualification, "Bachelors"))
	assert.Empty(t, validation.Validate(domain.FieldHighestEducationQualification, "Master of Science"))
	assert.Equal(t, validation.MsgEducation, validation.Validate(domain.FieldHighestEducationQualification, "B.Tech"))
	assert.Equal(t, validation.MsgEducation, validation.Validate(domain.FieldHighestEducationQualification, strings.Repeat("a", 51)))
}

func TestValidatePassoutYear(t *testing.T) {
	for _, y := range []string{"2020", "2022", "2024"} {
		assert.Empty(t, validation.Validate(domain.FieldQualificationPassoutYear, y))
	}
	assert.Equal(t, validation.MsgYearRange, validation.Validate(domain.FieldQualificationPassoutYear, "2019"))
	assert.Equal(t, validation.MsgYearRange, validation.Validate(domain.FieldQualificationPassoutYear, "2025"))

	// unparsable input must fail instead of slipping through
	for _, y := range []string{"", "abc", "2022abc", "20.22"} {
		assert.Equal(t, validation.MsgYearNumber, validation.Validate(domain.FieldQualificationPassoutYear, y), y)
	}
}

func TestValidateMarks(t *testing.T) {
	for _, m := range []string{"0", "88.5", "100", "100.0", "0.001"} {
		assert.Empty(t, validation.Validate(domain.FieldMarksObtainedPercentage, m), m)
	}
	for _, m := range []string{"-0.01", "100.01", "1000"} {
		assert.Equal(t, validation.MsgMarksRange, validation.Validate(domain.FieldMarksObtainedPercentage, m), m)
	}
	for _, m := range []string{"", "abc", "NaN", "Inf", "88.5%", "0x1p6", "6.4e1", "1_0"} {
		assert.Equal(t, validation.MsgMarksNumber, validation.Validate(domain.FieldMarksObtainedPercentage, m), m)
	}
}

func TestValidateResume(t *testing.T) {
	for _, name := range []string{"cv.pdf", "CV.PDF", "resume.doc", "resume.docx"} {
		assert.Empty(t, validation.Validate(domain.FieldResume, name), name)
	}
	for _, name := range []string{"cv.exe", "cv.pdf.exe", "cv", ""} {
		assert.Equal(t, validation.MsgResumeType, validation.Validate(domain.FieldResume, name), name)
	}
}

func TestExperienceHasNoRule(t *testing.T) {
	assert.Empty(t, validation.Validate(domain.FieldHaveAnyExperience, "true"))
	assert.Empty(t, validation.Validate(domain.FieldHaveAnyExperience, "whatever"))
}

func TestValidateRecord(t *testing.T) {
	rec := domain.CandidateRecord{
		Name:                          "John Doe",
		Gender:                        "Male",
		Email:                         "john@doe.com",
		DOB:                           "2000-05-01",
		Place:                         "Austin",
		PhoneNumber:                   "5551234567",
		HighestEducationQualification: "Bachelors",
		QualificationPassoutYear:      2022,
		MarksObtainedPercentage:       88.5,
		HaveAnyExperience:             true,
	}

	t.Run("valid record", func(t *testing.T) {
		errs := validation.ValidateRecord(rec)
		assert.False(t, errs.Any(), errs.Error())
	})

	t.Run("collects every failing field", func(t *testing.T) {
		bad := rec
		bad.Name = ""
		bad.PhoneNumber = "123"
		bad.QualificationPassoutYear = 0

		errs := validation.ValidateRecord(bad)
		assert.True(t, errs.Any())
		assert.Equal(t, "Name is required.", errs.Name)
		assert.Equal(t, validation.MsgPhone, errs.PhoneNumber)
		assert.Equal(t, validation.MsgYearRange, errs.QualificationPassoutYear)
		assert.Equal(t, []domain.Field{
			domain.FieldName,
			domain.FieldPhoneNumber,
			domain.FieldQualificationPassoutYear,
		}, errs.Failed())
	})
}

func TestErrorsWithIsCopy(t *testing.T) {
	var base validation.Errors
	next := base.With(domain.FieldEmail, validation.MsgEmail)

	assert.False(t, base.Any())
	assert.True(t, next.Any())
	assert.Equal(t, validation.MsgEmail, next.Get(domain.FieldEmail))
	assert.False(t, next.With(domain.FieldEmail, "").Any())
}
