// Package form models the add and update candidate forms as an immutable
// Draft advanced by a pure reducer.
package form

import (
	"strconv"
	"strings"

	"go-candidate-admin/internal/domain"
	"go-candidate-admin/pkg/validation"
)

type State int

const (
	Editing State = iota
	Validating
	Submitting
	Success
	Failed
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Validating:
		return "validating"
	case Submitting:
		return "submitting"
	case Success:
		return "success"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Draft is the not yet submitted content of a form. It is a value: every
// reducer step returns a new Draft and never mutates its input.
type Draft struct {
	creating    bool
	candidateID int64
	raw         [len(fieldSlots)]string
	experience  bool
	resume      *domain.ResumeFile
	stored      domain.ResumeRef
	errors      validation.Errors
	state       State
	alert       string
	loading     bool
}

// fieldSlots are the text inputs, in form order.
var fieldSlots = [...]domain.Field{
	domain.FieldName,
	domain.FieldGender,
	domain.FieldEmail,
	domain.FieldDOB,
	domain.FieldPlace,
	domain.FieldPhoneNumber,
	domain.FieldHighestEducationQualification,
	domain.FieldQualificationPassoutYear,
	domain.FieldMarksObtainedPercentage,
}

func slot(f domain.Field) (int, bool) {
	for i, s := range fieldSlots {
		if s == f {
			return i, true
		}
	}
	return 0, false
}

// TextFields lists the fields edited through a text or select input.
func TextFields() []domain.Field {
	return fieldSlots[:]
}

// NewAddDraft is the empty add form.
func NewAddDraft() Draft {
	return Draft{creating: true}
}

// NewUpdateDraft is an update form waiting for its record to load.
func NewUpdateDraft(id int64) Draft {
	return Draft{candidateID: id, loading: true}
}

func (d Draft) Creating() bool                 { return d.creating }
func (d Draft) CandidateID() int64             { return d.candidateID }
func (d Draft) Experience() bool               { return d.experience }
func (d Draft) Resume() *domain.ResumeFile     { return d.resume }
func (d Draft) StoredResume() domain.ResumeRef { return d.stored }
func (d Draft) Errors() validation.Errors      { return d.errors }
func (d Draft) State() State                   { return d.state }
func (d Draft) Alert() string                  { return d.alert }
func (d Draft) Loading() bool                  { return d.loading }

// Value is the raw input of a text field.
func (d Draft) Value(f domain.Field) string {
	if f == domain.FieldHaveAnyExperience {
		return strconv.FormatBool(d.experience)
	}
	if i, ok := slot(f); ok {
		return d.raw[i]
	}
	return ""
}

func (d Draft) Error(f domain.Field) string {
	return d.errors.Get(f)
}

// Record converts the draft to a CandidateRecord. Numbers are parsed
// leniently; a draft that passed validation always parses.
func (d Draft) Record() domain.CandidateRecord {
	year, _ := strconv.Atoi(strings.TrimSpace(d.Value(domain.FieldQualificationPassoutYear)))
	marks, _ := strconv.ParseFloat(strings.TrimSpace(d.Value(domain.FieldMarksObtainedPercentage)), 64)
	return domain.CandidateRecord{
		CandidateID:                   d.candidateID,
		Name:                          d.Value(domain.FieldName),
		Gender:                        d.Value(domain.FieldGender),
		Email:                         d.Value(domain.FieldEmail),
		DOB:                           d.Value(domain.FieldDOB),
		Place:                         d.Value(domain.FieldPlace),
		PhoneNumber:                   d.Value(domain.FieldPhoneNumber),
		HighestEducationQualification: d.Value(domain.FieldHighestEducationQualification),
		QualificationPassoutYear:      year,
		MarksObtainedPercentage:       marks,
		HaveAnyExperience:             d.experience,
		Resume:                        d.stored,
	}
}
