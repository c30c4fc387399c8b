package domain

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"

	"go-candidate-admin/pkg/security"
)

// CandidateRecord is the flat candidate entity as exchanged with the API.
// CandidateID is assigned by the server and is zero before creation.
type CandidateRecord struct {
	CandidateID                   int64     `json:"candidateID,omitempty"`
	Name                          string    `json:"name"`
	Gender                        string    `json:"gender"`
	Email                         string    `json:"email"`
	DOB                           string    `json:"dob"`
	Place                         string    `json:"place"`
	PhoneNumber                   string    `json:"phoneNumber"`
	HighestEducationQualification string    `json:"highestEducationQualification"`
	QualificationPassoutYear      int       `json:"qualificationPassoutYear"`
	MarksObtainedPercentage       float64   `json:"marksObtainedPercentage"`
	HaveAnyExperience             bool      `json:"haveAnyExperience"`
	Resume                        ResumeRef `json:"resume"`
}

// ResumeFile is a resume being uploaded with a create or update.
type ResumeFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ResumeRef is how a stored resume comes back from the API: either a
// server-hosted path or the file content itself. At most one is set.
type ResumeRef struct {
	Path    string
	Content []byte
}

func (r ResumeRef) IsZero() bool {
	return r.Path == "" && len(r.Content) == 0
}

// ParseResumeRef normalises the API's resume value. A data: URI or base64
// that decodes to a pdf/doc/docx document is file content, anything else is
// a path or URL on the API server.
func ParseResumeRef(raw string) ResumeRef {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return ResumeRef{}
	}
	if strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return ResumeRef{Path: raw}
	}
	// data:application/pdf;base64,....
	if strings.HasPrefix(raw, "data:") {
		if i := strings.Index(raw, ","); i >= 0 {
			if content, err := base64.StdEncoding.DecodeString(raw[i+1:]); err == nil && len(content) > 0 {
				return ResumeRef{Content: content}
			}
		}
		return ResumeRef{}
	}
	content, err := base64.StdEncoding.DecodeString(raw)
	if err == nil {
		if ext, _ := security.SniffResume(content); ext != "" {
			return ResumeRef{Content: content}
		}
	}
	// a relative path such as "uploads/cv.pdf" or "uploads/resume01"
	return ResumeRef{Path: raw}
}

func (r ResumeRef) MarshalJSON() ([]byte, error) {
	switch {
	case r.Path != "":
		return json.Marshal(r.Path)
	case len(r.Content) > 0:
		return json.Marshal(base64.StdEncoding.EncodeToString(r.Content))
	default:
		return []byte("null"), nil
	}
}

func (r *ResumeRef) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = ResumeRef{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = ParseResumeRef(raw)
	return nil
}

// NormalizeDOB drops the time part of a timestamp-bearing date of birth.
func NormalizeDOB(dob string) string {
	if i := strings.Index(dob, "T"); i >= 0 {
		return dob[:i]
	}
	return dob
}

var Genders = []string{"Male", "Female", "Other"}

type CandidateRepository interface {
	Create(ctx context.Context, record *CandidateRecord, resume *ResumeFile) error
	GetByID(ctx context.Context, id int64) (*CandidateRecord, error)
	List(ctx context.Context) ([]CandidateRecord, error)
	Update(ctx context.Context, id int64, record *CandidateRecord, resume *ResumeFile) error
	Delete(ctx context.Context, id int64) error
	EmailExists(ctx context.Context, email string) (bool, error)
	PhoneExists(ctx context.Context, phone string) (bool, error)
}

type CandidateUsecase interface {
	Create(ctx context.Context, record *CandidateRecord, resume *ResumeFile) error
	Get(ctx context.Context, id int64) (*CandidateRecord, error)
	List(ctx context.Context) ([]CandidateRecord, error)
	Update(ctx context.Context, id int64, record *CandidateRecord, resume *ResumeFile) error
	Delete(ctx context.Context, id int64) error
	CheckEmailAvailability(ctx context.Context, email string) (bool, error)
	CheckPhoneAvailability(ctx context.Context, phone string) (bool, error)
}
