package usecase

import (
	"context"
	"fmt"
	"net/http"

	"go-candidate-admin/internal/domain"
	"go-candidate-admin/pkg/apperror"
	"go-candidate-admin/pkg/logger"
	"go-candidate-admin/pkg/security"
	"go-candidate-admin/pkg/security/antivirus"
	"go-candidate-admin/pkg/validation"

	"go.uber.org/zap"
)

const (
	msgInvalidRecord   = "Please correct the highlighted fields."
	msgResumeMismatch  = "Resume content does not match its file type."
	msgResumeInfected  = "Resume was rejected by the virus scanner."
	msgScanUnavailable = "Resume could not be scanned. Please try again later."
)

// DefaultMaxResumeBytes applies when no upload cap is configured.
const DefaultMaxResumeBytes = 5 << 20

func ResumeTooLargeMessage(maxBytes int64) string {
	return fmt.Sprintf("Resume cannot exceed %d MB.", maxBytes>>20)
}

type candidateUsecase struct {
	repo           domain.CandidateRepository
	scanner        antivirus.Scanner
	maxResumeBytes int64
}

func NewCandidateUsecase(repo domain.CandidateRepository, scanner antivirus.Scanner, maxResumeBytes int64) domain.CandidateUsecase {
	if scanner == nil {
		scanner = antivirus.NoOpScanner{}
	}
	if maxResumeBytes <= 0 {
		maxResumeBytes = DefaultMaxResumeBytes
	}
	return &candidateUsecase{
		repo:           repo,
		scanner:        scanner,
		maxResumeBytes: maxResumeBytes,
	}
}

func (u *candidateUsecase) Create(ctx context.Context, record *domain.CandidateRecord, resume *domain.ResumeFile) error {
	if err := u.gate(ctx, record, resume); err != nil {
		return err
	}
	if err := u.repo.Create(ctx, record, resume); err != nil {
		u.logFailure(ctx, "create", 0, err)
		return err
	}
	return nil
}

func (u *candidateUsecase) Get(ctx context.Context, id int64) (*domain.CandidateRecord, error) {
	record, err := u.repo.GetByID(ctx, id)
	if err != nil {
		u.logFailure(ctx, "fetch_one", id, err)
		return nil, err
	}
	return record, nil
}

func (u *candidateUsecase) List(ctx context.Context) ([]domain.CandidateRecord, error) {
	records, err := u.repo.List(ctx)
	if err != nil {
		u.logFailure(ctx, "fetch_all", 0, err)
		return nil, err
	}
	return records, nil
}

func (u *candidateUsecase) Update(ctx context.Context, id int64, record *domain.CandidateRecord, resume *domain.ResumeFile) error {
	if err := u.gate(ctx, record, resume); err != nil {
		return err
	}
	record.CandidateID = id
	if err := u.repo.Update(ctx, id, record, resume); err != nil {
		u.logFailure(ctx, "update", id, err)
		return err
	}
	return nil
}

func (u *candidateUsecase) Delete(ctx context.Context, id int64) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		u.logFailure(ctx, "delete", id, err)
		return err
	}
	return nil
}

func (u *candidateUsecase) CheckEmailAvailability(ctx context.Context, email string) (bool, error) {
	exists, err := u.repo.EmailExists(ctx, email)
	if err != nil {
		u.logFailure(ctx, "check_email", 0, err)
		return false, err
	}
	return exists, nil
}

func (u *candidateUsecase) CheckPhoneAvailability(ctx context.Context, phone string) (bool, error) {
	exists, err := u.repo.PhoneExists(ctx, phone)
	if err != nil {
		u.logFailure(ctx, "check_phone", 0, err)
		return false, err
	}
	return exists, nil
}

// gate re-checks the record and screens the resume before anything is sent
// to the API.
func (u *candidateUsecase) gate(ctx context.Context, record *domain.CandidateRecord, resume *domain.ResumeFile) error {
	if record == nil {
		return apperror.BadRequest("missing candidate record")
	}
	if errs := validation.ValidateRecord(*record); errs.Any() {
		return invalid(errs)
	}
	if resume == nil {
		return nil
	}
	return u.screenResume(ctx, resume)
}

func (u *candidateUsecase) screenResume(ctx context.Context, resume *domain.ResumeFile) error {
	if msg := validation.Validate(domain.FieldResume, resume.Filename); msg != "" {
		return invalid(validation.Errors{Resume: msg})
	}
	if int64(len(resume.Data)) > u.maxResumeBytes {
		return invalid(validation.Errors{Resume: ResumeTooLargeMessage(u.maxResumeBytes)})
	}

	check := security.ValidateResume(resume.Filename, resume.Data)
	if !check.Valid {
		logger.Log.Warn("resume rejected",
			zap.String("filename", resume.Filename),
			zap.String("detected_mime", check.DetectedMIME),
			zap.String("reason", check.Error),
			zap.String("request_id", requestID(ctx)),
		)
		return invalid(validation.Errors{Resume: msgResumeMismatch})
	}
	if resume.ContentType == "" || resume.ContentType == "application/octet-stream" {
		resume.ContentType = security.ResumeContentType(resume.Filename)
	}

	verdict := u.scanner.Scan(ctx, resume.Filename, resume.Data)
	if verdict.Err != nil {
		logger.Log.Error("resume scan failed",
			zap.String("scanner", verdict.Scanner),
			zap.String("filename", resume.Filename),
			zap.String("request_id", requestID(ctx)),
			zap.Error(verdict.Err),
		)
		return apperror.New(http.StatusServiceUnavailable, apperror.KindInternal, msgScanUnavailable, verdict.Err)
	}
	if verdict.Infected {
		logger.Log.Warn("infected resume rejected",
			zap.String("scanner", verdict.Scanner),
			zap.String("threat", verdict.Threat),
			zap.String("filename", resume.Filename),
			zap.String("request_id", requestID(ctx)),
		)
		return invalid(validation.Errors{Resume: msgResumeInfected})
	}
	return nil
}

// invalid wraps field errors so callers can recover them with errors.As.
func invalid(errs validation.Errors) error {
	appErr := apperror.Validation(msgInvalidRecord)
	appErr.Err = errs
	return appErr
}

func (u *candidateUsecase) logFailure(ctx context.Context, op string, id int64, err error) {
	fields := []zap.Field{
		zap.String("operation", op),
		zap.String("request_id", requestID(ctx)),
		zap.Error(err),
	}
	if id != 0 {
		fields = append(fields, zap.Int64("candidate_id", id))
	}
	if appErr, ok := apperror.As(err); ok {
		fields = append(fields, zap.String("kind", string(appErr.Kind)), zap.Int("status", appErr.Code))
	}
	logger.Log.Error("candidate api call failed", fields...)
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(domain.KeyRequestID).(string)
	return id
}
