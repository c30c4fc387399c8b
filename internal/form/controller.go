package form

import (
	"context"
	"errors"
	"net/http"

	"go-candidate-admin/internal/domain"
	"go-candidate-admin/pkg/apperror"
	"go-candidate-admin/pkg/metrics"
	"go-candidate-admin/pkg/validation"
)

const (
	ListRoute = "/view-candidates"

	MsgAdded   = "Candidate added successfully!"
	MsgUpdated = "Candidate details updated successfully!"

	msgAddFailed    = "An error occurred while adding the candidate."
	msgUpdateFailed = "Error updating candidate details."
	msgLoadFailed   = "Error fetching candidate details."
)

// Outcome tells the caller where to go after a successful submit and which
// message to carry there.
type Outcome struct {
	Redirect string
	Flash    string
}

type AddController struct {
	candidates domain.CandidateUsecase
}

func NewAddController(uc domain.CandidateUsecase) *AddController {
	return &AddController{candidates: uc}
}

// Submit validates d and creates the candidate. On success the returned
// Outcome is non-nil; otherwise the draft carries the errors and alert.
func (c *AddController) Submit(ctx context.Context, d Draft) (Draft, *Outcome) {
	d, ok := validate(d)
	if !ok {
		metrics.FormSubmissions.WithLabelValues("add", "invalid").Inc()
		return d, nil
	}

	record := d.Record()
	if err := c.candidates.Create(ctx, &record, d.Resume()); err != nil {
		metrics.FormSubmissions.WithLabelValues("add", "failed").Inc()
		return failed(d, err, msgAddFailed), nil
	}

	metrics.FormSubmissions.WithLabelValues("add", "success").Inc()
	return Reduce(d, SubmitSucceeded{}), &Outcome{Redirect: ListRoute, Flash: MsgAdded}
}

type UpdateController struct {
	candidates domain.CandidateUsecase
}

func NewUpdateController(uc domain.CandidateUsecase) *UpdateController {
	return &UpdateController{candidates: uc}
}

// Load fetches the stored record into a fresh update draft.
func (c *UpdateController) Load(ctx context.Context, id int64) (Draft, error) {
	d := NewUpdateDraft(id)
	record, err := c.candidates.Get(ctx, id)
	if err != nil {
		msg := msgLoadFailed
		if apperror.Is(err, apperror.KindNotFound) {
			msg = err.Error()
		}
		return Reduce(d, LoadFailed{Message: msg}), err
	}
	return Reduce(d, Loaded{Record: *record}), nil
}

func (c *UpdateController) Submit(ctx context.Context, id int64, d Draft) (Draft, *Outcome) {
	d, ok := validate(d)
	if !ok {
		metrics.FormSubmissions.WithLabelValues("update", "invalid").Inc()
		return d, nil
	}

	record := d.Record()
	if err := c.candidates.Update(ctx, id, &record, d.Resume()); err != nil {
		metrics.FormSubmissions.WithLabelValues("update", "failed").Inc()
		return failed(d, err, msgUpdateFailed), nil
	}

	metrics.FormSubmissions.WithLabelValues("update", "success").Inc()
	return Reduce(d, SubmitSucceeded{}), &Outcome{Redirect: ListRoute, Flash: MsgUpdated}
}

func validate(d Draft) (Draft, bool) {
	d = Reduce(d, SubmitRequested{})
	d = Reduce(d, ValidationFinished{})
	return d, d.State() == Submitting
}

// failed moves d through Failed back to Editing with an alert. Field errors
// from the usecase are kept next to their inputs.
func failed(d Draft, err error, fallback string) Draft {
	msg := fallback
	var fields validation.Errors
	if appErr, ok := apperror.As(err); ok {
		switch {
		case appErr.Kind == apperror.KindValidation, appErr.Kind == apperror.KindNotFound:
			msg = appErr.Message
		case appErr.Code == http.StatusServiceUnavailable:
			msg = appErr.Message
		}
		errors.As(err, &fields)
	}
	d = Reduce(d, SubmitFailed{Message: msg, Fields: fields})
	return Reduce(d, AlertShown{})
}
