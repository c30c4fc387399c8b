package validation

import (
	"strings"

	"go-candidate-admin/internal/domain"
)

// Errors holds one message per validated field. An empty string means the
// field is valid. Values are copied, never shared.
type Errors struct {
	Name                          string
	Gender                        string
	Email                         string
	DOB                           string
	Place                         string
	PhoneNumber                   string
	HighestEducationQualification string
	QualificationPassoutYear      string
	MarksObtainedPercentage       string
	Resume                        string
}

func (e Errors) Get(f domain.Field) string {
	switch f {
	case domain.FieldName:
		return e.Name
	case domain.FieldGender:
		return e.Gender
	case domain.FieldEmail:
		return e.Email
	case domain.FieldDOB:
		return e.DOB
	case domain.FieldPlace:
		return e.Place
	case domain.FieldPhoneNumber:
		return e.PhoneNumber
	case domain.FieldHighestEducationQualification:
		return e.HighestEducationQualification
	case domain.FieldQualificationPassoutYear:
		return e.QualificationPassoutYear
	case domain.FieldMarksObtainedPercentage:
		return e.MarksObtainedPercentage
	case domain.FieldResume:
		return e.Resume
	}
	return ""
}

// With returns a copy of e with the message for f replaced.
func (e Errors) With(f domain.Field, msg string) Errors {
	switch f {
	case domain.FieldName:
		e.Name = msg
	case domain.FieldGender:
		e.Gender = msg
	case domain.FieldEmail:
		e.Email = msg
	case domain.FieldDOB:
		e.DOB = msg
	case domain.FieldPlace:
		e.Place = msg
	case domain.FieldPhoneNumber:
		e.PhoneNumber = msg
	case domain.FieldHighestEducationQualification:
		e.HighestEducationQualification = msg
	case domain.FieldQualificationPassoutYear:
		e.QualificationPassoutYear = msg
	case domain.FieldMarksObtainedPercentage:
		e.MarksObtainedPercentage = msg
	case domain.FieldResume:
		e.Resume = msg
	}
	return e
}

func (e Errors) Any() bool {
	return e != Errors{}
}

// Failed lists the fields that carry a message, in form order.
func (e Errors) Failed() []domain.Field {
	var out []domain.Field
	for _, f := range domain.Fields {
		if e.Get(f) != "" {
			out = append(out, f)
		}
	}
	return out
}

// Error joins the messages so Errors can be reported as a single error text.
func (e Errors) Error() string {
	var msgs []string
	for _, f := range e.Failed() {
		msgs = append(msgs, e.Get(f))
	}
	return strings.Join(msgs, " ")
}
