package form

import (
	"go-candidate-admin/internal/domain"
	"go-candidate-admin/pkg/validation"
)

// Action is one input to Reduce.
type Action interface {
	isAction()
}

// ChangeField sets the raw value of a field and validates it right away.
type ChangeField struct {
	Field domain.Field
	Value string
}

type SetExperience struct {
	Value bool
}

// AttachResume selects a new resume file. A nil File clears the selection.
type AttachResume struct {
	File *domain.ResumeFile
}

// Loaded fills an update draft from the stored record.
type Loaded struct {
	Record domain.CandidateRecord
}

// ResumeOnFile records the resume already stored for the candidate without
// touching the input.
type ResumeOnFile struct {
	Ref domain.ResumeRef
}

type LoadFailed struct {
	Message string
}

// SubmitRequested starts validation of the whole form.
type SubmitRequested struct{}

// ValidationFinished leaves Validating: to Submitting when the form is
// clean, back to Editing otherwise.
type ValidationFinished struct{}

type SubmitSucceeded struct{}

// SubmitFailed records a rejected submit. Fields carries per-field messages
// reported by the server side checks, if any.
type SubmitFailed struct {
	Message string
	Fields  validation.Errors
}

// AlertShown returns a failed draft to Editing; the alert and input stay.
type AlertShown struct{}

func (ChangeField) isAction()        {}
func (SetExperience) isAction()      {}
func (AttachResume) isAction()       {}
func (Loaded) isAction()             {}
func (ResumeOnFile) isAction()       {}
func (LoadFailed) isAction()         {}
func (SubmitRequested) isAction()    {}
func (ValidationFinished) isAction() {}
func (SubmitSucceeded) isAction()    {}
func (SubmitFailed) isAction()       {}
func (AlertShown) isAction()         {}

// Reduce applies a to d. It has no side effects.
func Reduce(d Draft, a Action) Draft {
	switch a := a.(type) {
	case ChangeField:
		if a.Field == domain.FieldHaveAnyExperience {
			d.experience = a.Value == "true"
			break
		}
		i, ok := slot(a.Field)
		if !ok {
			return d
		}
		d.raw[i] = a.Value
		d.errors = d.errors.With(a.Field, validation.Validate(a.Field, a.Value))
		d.state = editable(d.state)

	case SetExperience:
		d.experience = a.Value
		d.state = editable(d.state)

	case AttachResume:
		d.resume = a.File
		msg := ""
		if a.File != nil {
			msg = validation.Validate(domain.FieldResume, a.File.Filename)
		}
		d.errors = d.errors.With(domain.FieldResume, msg)
		d.state = editable(d.state)

	case Loaded:
		r := a.Record
		for i, f := range fieldSlots {
			d.raw[i] = r.FieldValue(f)
		}
		d.candidateID = r.CandidateID
		d.experience = r.HaveAnyExperience
		d.stored = r.Resume
		d.errors = validation.Errors{}
		d.loading = false
		d.alert = ""
		d.state = Editing

	case ResumeOnFile:
		d.stored = a.Ref

	case LoadFailed:
		d.loading = false
		d.alert = a.Message
		d.state = Failed

	case SubmitRequested:
		if d.state == Submitting {
			return d
		}
		d.errors = d.validateAll()
		d.alert = ""
		d.state = Validating

	case ValidationFinished:
		if d.state != Validating {
			return d
		}
		if d.errors.Any() {
			d.state = Editing
		} else {
			d.state = Submitting
		}

	case SubmitSucceeded:
		d.state = Success
		d.alert = ""

	case SubmitFailed:
		d.state = Failed
		d.alert = a.Message
		for _, f := range a.Fields.Failed() {
			d.errors = d.errors.With(f, a.Fields.Get(f))
		}

	case AlertShown:
		if d.state == Failed {
			d.state = Editing
		}
	}
	return d
}

func editable(s State) State {
	if s == Failed || s == Success {
		return Editing
	}
	return s
}

// validateAll runs every rule over populated fields and flags required
// fields that are empty.
func (d Draft) validateAll() validation.Errors {
	var errs validation.Errors
	for i, f := range fieldSlots {
		raw := d.raw[i]
		if raw == "" {
			if validation.Required(f, d.creating) {
				errs = errs.With(f, validation.RequiredMessage(f))
			}
			continue
		}
		errs = errs.With(f, validation.Validate(f, raw))
	}

	switch {
	case d.resume != nil:
		errs = errs.With(domain.FieldResume, validation.Validate(domain.FieldResume, d.resume.Filename))
	case validation.Required(domain.FieldResume, d.creating):
		errs = errs.With(domain.FieldResume, validation.RequiredMessage(domain.FieldResume))
	}
	return errs
}
