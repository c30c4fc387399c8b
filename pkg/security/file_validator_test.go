package security_test

import (
	"testing"

	"go-candidate-admin/pkg/security"

	"github.com/stretchr/testify/assert"
)

var (
	pdfBytes  = []byte("%PDF-1.7\n%binary")
	docBytes  = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1, 0x00}
	docxBytes = []byte{0x50, 0x4B, 0x03, 0x04, 0x14, 0x00}
)

func TestValidateResume(t *testing.T) {
	t.Run("accepts matching documents", func(t *testing.T) {
		assert.True(t, security.ValidateResume("cv.pdf", pdfBytes).Valid)
		assert.True(t, security.ValidateResume("CV.DOC", docBytes).Valid)
		assert.True(t, security.ValidateResume("cv.docx", docxBytes).Valid)
	})

	t.Run("rejects unknown extensions", func(t *testing.T) {
		res := security.ValidateResume("cv.exe", pdfBytes)
		assert.False(t, res.Valid)
		assert.Contains(t, res.Error, "not allowed")
	})

	t.Run("rejects spoofed content", func(t *testing.T) {
		res := security.ValidateResume("cv.pdf", docxBytes)
		assert.False(t, res.Valid)
		assert.Equal(t, ".pdf", res.Extension)
	})

	t.Run("rejects missing extension and tiny files", func(t *testing.T) {
		assert.False(t, security.ValidateResume("cv", pdfBytes).Valid)
		assert.False(t, security.ValidateResume("cv.pdf", []byte("%P")).Valid)
	})
}

func TestSniffResume(t *testing.T) {
	ext, ct := security.SniffResume(pdfBytes)
	assert.Equal(t, ".pdf", ext)
	assert.Equal(t, "application/pdf", ct)

	ext, _ = security.SniffResume(docxBytes)
	assert.Equal(t, ".docx", ext)

	ext, ct = security.SniffResume([]byte("plain text"))
	assert.Empty(t, ext)
	assert.Equal(t, "application/octet-stream", ct)
}

func TestResumeContentType(t *testing.T) {
	assert.Equal(t, "application/msword", security.ResumeContentType("a.DOC"))
	assert.Equal(t, "application/octet-stream", security.ResumeContentType("a.txt"))
}
