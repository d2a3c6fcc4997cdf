package ports

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/corey/medreport/internal/domain/report"
)

// Errors an AnalysisProvider may return. Adapters wrap them with detail;
// callers test with errors.Is.
var (
	ErrInvalidInput      = errors.New("invalid analysis input")
	ErrQuotaExceeded     = errors.New("analysis quota exceeded")
	ErrUnavailable       = errors.New("analysis service unavailable")
	ErrSafetyBlocked     = errors.New("analysis blocked by safety filter")
	ErrUnauthorized      = errors.New("analysis service rejected credentials")
	ErrMalformedResponse = errors.New("malformed analysis response")
)

// Retryable reports whether err is a transient provider failure worth retrying.
func Retryable(err error) bool {
	return errors.Is(err, ErrUnavailable) || errors.Is(err, ErrQuotaExceeded)
}

// Accepted attachment MIME types.
var AttachmentTypes = map[string]report.InputKind{
	"image/jpeg":      report.KindImage,
	"image/png":       report.KindImage,
	"image/webp":      report.KindImage,
	"image/heic":      report.KindImage,
	"application/pdf": report.KindLabReport,
}

// DefaultMaxAttachmentBytes caps the decoded attachment size.
const DefaultMaxAttachmentBytes = 10 << 20

// Attachment is a scanned lab report or photo, base64 encoded for transport.
type Attachment struct {
	Name     string `json:"name"`
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"` // standard base64
}

// EncodeAttachment builds an Attachment from raw bytes.
func EncodeAttachment(name, mimeType string, data []byte) *Attachment {
	return &Attachment{
		Name:     name,
		MIMEType: mimeType,
		Data:     base64.StdEncoding.EncodeToString(data),
	}
}

// Decode returns the raw attachment bytes.
func (a *Attachment) Decode() ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(a.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: attachment %q is not valid base64", ErrInvalidInput, a.Name)
	}
	return b, nil
}

// AnalysisRequest is what the host sends to an AnalysisProvider: free-text
// symptoms (with any confirmed picker clause already appended) and/or one
// attachment.
type AnalysisRequest struct {
	Symptoms   string      `json:"symptoms"`
	Attachment *Attachment `json:"attachment,omitempty"`
}

// Kind classifies the request by its primary input.
func (r *AnalysisRequest) Kind() report.InputKind {
	if r.Attachment != nil {
		if k, ok := AttachmentTypes[r.Attachment.MIMEType]; ok {
			return k
		}
	}
	return report.KindSymptoms
}

// Validate checks the request before it is sent. maxBytes <= 0 selects
// DefaultMaxAttachmentBytes. Failures wrap ErrInvalidInput.
func (r *AnalysisRequest) Validate(maxBytes int) error {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxAttachmentBytes
	}
	if strings.TrimSpace(r.Symptoms) == "" && r.Attachment == nil {
		return fmt.Errorf("%w: describe symptoms or attach a lab report or image", ErrInvalidInput)
	}
	if r.Attachment == nil {
		return nil
	}

	if _, ok := AttachmentTypes[r.Attachment.MIMEType]; !ok {
		return fmt.Errorf("%w: unsupported attachment type %q", ErrInvalidInput, r.Attachment.MIMEType)
	}
	data, err := r.Attachment.Decode()
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return fmt.Errorf("%w: attachment %q is empty", ErrInvalidInput, r.Attachment.Name)
	}
	if len(data) > maxBytes {
		return fmt.Errorf("%w: attachment %q is %d bytes (max %d)", ErrInvalidInput, r.Attachment.Name, len(data), maxBytes)
	}
	return nil
}

// AnalysisProvider turns a request into a structured report. Implementations
// fill every Report field except ID and CreatedAt, which the caller assigns.
type AnalysisProvider interface {
	Analyze(ctx context.Context, req AnalysisRequest) (*report.Report, error)
}
