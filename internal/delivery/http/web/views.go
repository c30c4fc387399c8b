package web

import (
	"strings"

	"go-candidate-admin/internal/domain"
	"go-candidate-admin/internal/form"
	"go-candidate-admin/pkg/validation"
)

// Page carries what the shared header needs.
type Page struct {
	Title       string
	CSRF        string
	Flash       string
	ToastMillis int64
}

type HomePage struct {
	Page
}

type ErrorPage struct {
	Page
	Error string
}

type ListPage struct {
	Page
	Query         string
	Candidates    []domain.CandidateRecord
	Error         string
	ConfirmPrompt string
}

type DetailPage struct {
	Page
	Candidate *domain.CandidateRecord
}

// FieldView is one text or select input of the candidate form.
type FieldView struct {
	Key     string
	Label   string
	Type    string
	Value   string
	Error   string
	Options []string
	Min     string
	Max     string
	Step    string
}

type FormPage struct {
	Page
	Action       string
	Submit       string
	Alert        string
	Loading      bool
	Fields       []FieldView
	Experience   bool
	StoredResume bool
	ResumeError  string
	ResumeAccept string
}

// NewFormPage renders a draft. Add and update share the same inputs and
// both always show field errors.
func NewFormPage(p Page, d form.Draft, action string) FormPage {
	fp := FormPage{
		Page:         p,
		Action:       action,
		Submit:       "Add Candidate",
		Alert:        d.Alert(),
		Loading:      d.Loading(),
		Experience:   d.Experience(),
		StoredResume: !d.StoredResume().IsZero(),
		ResumeError:  d.Error(domain.FieldResume),
		ResumeAccept: strings.Join(validation.AllowedResumeExtensions(), ","),
	}
	if !d.Creating() {
		fp.Submit = "Update Candidate"
	}
	for _, f := range form.TextFields() {
		fp.Fields = append(fp.Fields, fieldView(f, d))
	}
	return fp
}

func fieldView(f domain.Field, d form.Draft) FieldView {
	v := FieldView{
		Key:   f.Key(),
		Label: f.Label(),
		Type:  "text",
		Value: d.Value(f),
		Error: d.Error(f),
	}
	switch f {
	case domain.FieldGender:
		v.Options = domain.Genders
	case domain.FieldEmail:
		v.Type = "email"
	case domain.FieldDOB:
		v.Type, v.Min, v.Max = "date", "1999-01-01", "2002-12-31"
	case domain.FieldPhoneNumber:
		v.Type = "tel"
	case domain.FieldQualificationPassoutYear:
		v.Type, v.Min, v.Max = "number", "2020", "2024"
	case domain.FieldMarksObtainedPercentage:
		v.Type, v.Min, v.Max, v.Step = "number", "0", "100", "0.01"
	}
	return v
}
