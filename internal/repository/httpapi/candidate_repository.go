package httpapi

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go-candidate-admin/internal/domain"
	"go-candidate-admin/pkg/apperror"
	"go-candidate-admin/pkg/metrics"
)

// User-facing messages for failed calls
const (
	msgCreateFailed = "An error occurred while adding the candidate."
	msgFetchFailed  = "Error fetching candidate details."
	msgListFailed   = "Error fetching candidates."
	msgUpdateFailed = "Error updating candidate details."
	msgDeleteFailed = "Error deleting candidate."
	msgNotFound     = "Candidate not found."
	msgEmailCheck   = "Error checking email availability."
	msgPhoneCheck   = "Error checking phone number availability."
)

// maxErrorBody bounds how much of a failed response is kept for diagnostics
const maxErrorBody = 4 << 10

type candidateRepository struct {
	baseURL string
	client  *http.Client
}

// NewCandidateRepository returns a client for the candidate API rooted at
// baseURL (e.g. https://localhost:7294/api).
func NewCandidateRepository(baseURL string, client *http.Client) domain.CandidateRepository {
	if client == nil {
		client = NewHTTPClient(15*time.Second, false)
	}
	return &candidateRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// NewHTTPClient builds the transport used to talk to the API. insecureTLS is
// meant for local development certificates only.
func NewHTTPClient(timeout time.Duration, insecureTLS bool) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if insecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

func (r *candidateRepository) Create(ctx context.Context, record *domain.CandidateRecord, resume *domain.ResumeFile) error {
	body, contentType, err := encodeRecord(record, resume, false)
	if err != nil {
		return apperror.Internal(err)
	}
	resp, err := r.do(ctx, "create", http.MethodPost, "/add", body, contentType, msgCreateFailed)
	if err != nil {
		return err
	}
	drain(resp)
	return nil
}

func (r *candidateRepository) GetByID(ctx context.Context, id int64) (*domain.CandidateRecord, error) {
	resp, err := r.do(ctx, "fetch_one", http.MethodGet, "/candidate/"+formatID(id), nil, "", msgFetchFailed)
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	var record domain.CandidateRecord
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, apperror.Server(http.StatusBadGateway, msgFetchFailed, fmt.Errorf("decode candidate %d: %w", id, err))
	}
	record.DOB = domain.NormalizeDOB(record.DOB)
	return &record, nil
}

func (r *candidateRepository) List(ctx context.Context) ([]domain.CandidateRecord, error) {
	resp, err := r.do(ctx, "fetch_all", http.MethodGet, "/candidates", nil, "", msgListFailed)
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	var records []domain.CandidateRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, apperror.Server(http.StatusBadGateway, msgListFailed, fmt.Errorf("decode candidates: %w", err))
	}
	for i := range records {
		records[i].DOB = domain.NormalizeDOB(records[i].DOB)
	}
	return records, nil
}

// Update overwrites the whole record. There is no version check, the last
// writer wins.
func (r *candidateRepository) Update(ctx context.Context, id int64, record *domain.CandidateRecord, resume *domain.ResumeFile) error {
	withID := *record
	withID.CandidateID = id
	body, contentType, err := encodeRecord(&withID, resume, true)
	if err != nil {
		return apperror.Internal(err)
	}
	resp, err := r.do(ctx, "update", http.MethodPut, "/update/"+formatID(id), body, contentType, msgUpdateFailed)
	if err != nil {
		return err
	}
	drain(resp)
	return nil
}

func (r *candidateRepository) Delete(ctx context.Context, id int64) error {
	resp, err := r.do(ctx, "delete", http.MethodDelete, "/delete/"+formatID(id), nil, "", msgDeleteFailed)
	if err != nil {
		return err
	}
	drain(resp)
	return nil
}

func (r *candidateRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "check_email", "/check-email/"+url.PathEscape(email), msgEmailCheck)
}

func (r *candidateRepository) PhoneExists(ctx context.Context, phone string) (bool, error) {
	return r.exists(ctx, "check_phone", "/check-phone/"+url.PathEscape(phone), msgPhoneCheck)
}

type existsResponse struct {
	Exists bool `json:"exists"`
}

func (r *candidateRepository) exists(ctx context.Context, op, path, msg string) (bool, error) {
	resp, err := r.do(ctx, op, http.MethodGet, path, nil, "", msg)
	if err != nil {
		return false, apperror.Availability(msg, err)
	}
	defer drain(resp)

	var out existsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, apperror.Availability(msg, err)
	}
	return out.Exists, nil
}

// do sends one request. Anything but a 2xx answer is turned into an
// AppError; the caller owns the body of a successful response.
func (r *candidateRepository) do(ctx context.Context, op, method, path string, body io.Reader, contentType, failMsg string) (*http.Response, error) {
	start := time.Now()
	defer func() {
		metrics.APIRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, body)
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(op, "error").Inc()
		return nil, apperror.Internal(err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if reqID, ok := ctx.Value(domain.KeyRequestID).(string); ok && reqID != "" {
		req.Header.Set("X-Request-ID", reqID)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(op, "network_error").Inc()
		return nil, apperror.Network(failMsg, fmt.Errorf("%s %s: %w", method, path, err))
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		metrics.APIRequestsTotal.WithLabelValues(op, "ok").Inc()
		return resp, nil
	}

	defer resp.Body.Close()
	detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	cause := fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(detail)))

	if resp.StatusCode == http.StatusNotFound {
		metrics.APIRequestsTotal.WithLabelValues(op, "not_found").Inc()
		appErr := apperror.NotFound(msgNotFound)
		appErr.Err = cause
		return nil, appErr
	}
	metrics.APIRequestsTotal.WithLabelValues(op, "server_error").Inc()
	return nil, apperror.Server(resp.StatusCode, failMsg, cause)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	_ = resp.Body.Close()
}
