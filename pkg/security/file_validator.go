package security

import (
	"bytes"
	"net/http"
	"path/filepath"
	"strings"
)

// FileValidationResult contains the result of file validation
type FileValidationResult struct {
	Valid        bool   // Whether the file passed all validation checks
	Extension    string // Detected file extension
	DetectedMIME string // Detected MIME type
	Error        string // Error message if validation failed
}

// Magic byte signatures for resume documents
var magicBytes = map[string][][]byte{
	".pdf":  {{0x25, 0x50, 0x44, 0x46}},                         // %PDF
	".doc":  {{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}}, // OLE Compound Document
	".docx": {{0x50, 0x4B, 0x03, 0x04}},                         // ZIP (PK..)
}

// Content types used when serving or uploading a resume
var resumeMIMETypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// ValidateResume checks a resume upload:
// 1. Extension whitelist (.pdf, .doc, .docx)
// 2. Magic byte verification (content matches extension)
func ValidateResume(filename string, data []byte) FileValidationResult {
	result := FileValidationResult{
		DetectedMIME: http.DetectContentType(data),
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		result.Error = "file has no extension"
		return result
	}
	result.Extension = ext

	if _, ok := magicBytes[ext]; !ok {
		result.Error = "file extension not allowed: " + ext
		return result
	}

	if !validateMagicBytes(ext, data) {
		result.Error = "file content does not match extension"
		return result
	}

	result.Valid = true
	return result
}

func validateMagicBytes(ext string, data []byte) bool {
	if len(data) < 4 {
		return false
	}
	for _, sig := range magicBytes[ext] {
		if bytes.HasPrefix(data, sig) {
			return true
		}
	}
	return false
}

// SniffResume guesses the document type of stored resume content.
// Returns the extension and content type, falling back to a generic binary.
func SniffResume(data []byte) (string, string) {
	for _, ext := range []string{".pdf", ".doc", ".docx"} {
		if validateMagicBytes(ext, data) {
			return ext, resumeMIMETypes[ext]
		}
	}
	return "", "application/octet-stream"
}

// ResumeContentType returns the content type for a resume file name.
func ResumeContentType(filename string) string {
	if ct, ok := resumeMIMETypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return ct
	}
	return "application/octet-stream"
}
