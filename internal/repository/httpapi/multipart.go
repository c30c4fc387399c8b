package httpapi

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strconv"
	"strings"

	"go-candidate-admin/internal/domain"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// encodeRecord renders a record as multipart form data. Every field is sent
// as text; the resume part is only written when a file is attached.
func encodeRecord(record *domain.CandidateRecord, resume *domain.ResumeFile, withID bool) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if withID {
		if err := w.WriteField("candidateID", strconv.FormatInt(record.CandidateID, 10)); err != nil {
			return nil, "", err
		}
	}

	for _, f := range domain.Fields {
		if f == domain.FieldResume {
			continue
		}
		if err := w.WriteField(f.Key(), record.FieldValue(f)); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f.Key(), err)
		}
	}

	if resume != nil {
		if err := writeResume(w, resume); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func writeResume(w *multipart.Writer, resume *domain.ResumeFile) error {
	contentType := resume.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		domain.FieldResume.Key(), quoteEscaper.Replace(resume.Filename)))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create resume part: %w", err)
	}
	if _, err := part.Write(resume.Data); err != nil {
		return fmt.Errorf("write resume part: %w", err)
	}
	return nil
}
