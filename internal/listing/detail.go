package listing

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go-candidate-admin/internal/domain"
	"go-candidate-admin/pkg/apperror"
	"go-candidate-admin/pkg/security"
)

const (
	msgFetchFailed = "Error fetching candidate details."
	msgNoResume    = "No resume on file."
)

// Detail fetches one candidate for the read-only page. Failures come back
// as an AppError whose message replaces the page content.
func Detail(ctx context.Context, uc domain.CandidateUsecase, id int64) (*domain.CandidateRecord, error) {
	record, err := uc.Get(ctx, id)
	if err == nil {
		return record, nil
	}
	if appErr, ok := apperror.As(err); ok {
		if appErr.Kind == apperror.KindNotFound {
			return nil, appErr
		}
		return nil, apperror.New(appErr.Code, appErr.Kind, msgFetchFailed, err)
	}
	return nil, apperror.New(http.StatusBadGateway, apperror.KindServer, msgFetchFailed, err)
}

// Download is how a stored resume reaches the browser: either inline bytes
// or a redirect to the file hosted by the API.
type Download struct {
	Filename    string
	ContentType string
	Data        []byte
	RedirectURL string
}

func (d Download) IsRedirect() bool {
	return d.RedirectURL != ""
}

// ResumeDownload prepares the resume of record. Paths are resolved against
// apiBase, so "/uploads/cv.pdf" with base "https://host:7294/api" becomes
// "https://host:7294/uploads/cv.pdf".
func ResumeDownload(record domain.CandidateRecord, apiBase string) (Download, error) {
	ref := record.Resume
	switch {
	case len(ref.Content) > 0:
		ext, contentType := security.SniffResume(ref.Content)
		if ext == "" {
			ext, contentType = ".pdf", "application/pdf"
		}
		return Download{
			Filename:    "Resume_" + record.Name + ext,
			ContentType: contentType,
			Data:        ref.Content,
		}, nil

	case ref.Path != "":
		target, err := resolve(apiBase, ref.Path)
		if err != nil {
			return Download{}, apperror.Internal(err)
		}
		return Download{RedirectURL: target}, nil
	}
	return Download{}, apperror.NotFound(msgNoResume)
}

func resolve(apiBase, path string) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("resume path %q: %w", path, err)
	}
	if ref.IsAbs() {
		return ref.String(), nil
	}
	base, err := url.Parse(apiBase)
	if err != nil {
		return "", fmt.Errorf("api base %q: %w", apiBase, err)
	}
	origin := &url.URL{Scheme: base.Scheme, Host: base.Host, Path: "/"}
	return origin.ResolveReference(&url.URL{Path: strings.TrimPrefix(ref.Path, "/"), RawQuery: ref.RawQuery}).String(), nil
}
