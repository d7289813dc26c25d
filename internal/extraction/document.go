package extraction

import (
	"bytes"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// MIME types the pipeline cares about.
const (
	MIMEPDF  = "application/pdf"
	MIMEText = "text/plain"
)

// DocumentOpener validates and unlocks an uploaded PDF, returning the payload
// to transmit to the extraction service. Implementations other than the real
// one exist for testing the pipeline without PDF fixtures.
type DocumentOpener interface {
	Open(data []byte, password string) (payload []byte, mimeType string, err error)
}

// pdfOpener is the real DocumentOpener backed by the pdf library.
type pdfOpener struct{}

// NewPDFOpener returns the production document opener.
func NewPDFOpener() DocumentOpener {
	return pdfOpener{}
}

// Open checks that the PDF can be read, decrypting it when a password is
// supplied. Unencrypted documents are transmitted verbatim. Decrypted ones
// are replaced by their extracted page text, since the remote model cannot
// read the bytes while they stay locked.
func (pdfOpener) Open(data []byte, password string) ([]byte, string, error) {
	reader := bytes.NewReader(data)
	size := int64(len(data))

	var r *pdf.Reader
	var err error
	if password == "" {
		r, err = pdf.NewReader(reader, size)
	} else {
		r, err = pdf.NewReaderEncrypted(reader, size, passwordFunc(password))
	}
	if err != nil {
		return nil, "", err
	}

	if password == "" {
		return data, MIMEPDF, nil
	}

	text, err := extractPlainText(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to extract text from decrypted PDF: %w", err)
	}
	return []byte(text), MIMEText, nil
}

// passwordFunc yields the password exactly once. The pdf reader keeps calling
// until it gets an empty string, which ends the attempt.
func passwordFunc(pw string) func() string {
	used := false
	return func() string {
		if used {
			return ""
		}
		used = true
		return pw
	}
}

// extractPlainText concatenates the plain text of every page.
func extractPlainText(r *pdf.Reader) (string, error) {
	var b strings.Builder
	for pageIndex := 1; pageIndex <= r.NumPage(); pageIndex++ {
		p := r.Page(pageIndex)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", pageIndex, err)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// DetectMIMEType determines the MIME type of an upload from its file
// extension, sniffing the content when the extension is unknown.
func DetectMIMEType(path string, data []byte) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return MIMEPDF
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	}
	return http.DetectContentType(data)
}
