package extraction

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WeiChun0723/Moni/internal/scanerror"
	"github.com/WeiChun0723/Moni/internal/storage"
	"github.com/WeiChun0723/Moni/internal/store"
)

// stubExtractor returns canned records or a canned error.
type stubExtractor struct {
	records  []RawTransaction
	err      error
	payloads []string
	mimes    []string
}

func (s *stubExtractor) Extract(ctx context.Context, payload string, mimeType string) ([]RawTransaction, error) {
	s.payloads = append(s.payloads, payload)
	s.mimes = append(s.mimes, mimeType)
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

// stubOpener simulates an encrypted document: any password other than the
// correct one fails with a password error.
type stubOpener struct {
	correct string
}

func (o stubOpener) Open(data []byte, password string) ([]byte, string, error) {
	if o.correct == "" || password == o.correct {
		return []byte("statement text"), MIMEText, nil
	}
	return nil, "", errors.New("encrypted PDF: invalid password")
}

// passthroughOpener mimics an unencrypted document: bytes go through as-is.
type passthroughOpener struct{}

func (passthroughOpener) Open(data []byte, password string) ([]byte, string, error) {
	return data, MIMEPDF, nil
}

// deadlineExtractor honors context expiry and requires a deadline to be set.
type deadlineExtractor struct {
	records []RawTransaction
}

func (e *deadlineExtractor) Extract(ctx context.Context, payload string, mimeType string) ([]RawTransaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("extraction call has no deadline")
	}
	return e.records, nil
}

// fatalOpener always fails with a non-password error.
type fatalOpener struct{}

func (fatalOpener) Open(data []byte, password string) ([]byte, string, error) {
	return nil, "", errors.New("malformed PDF: missing xref table")
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.New(storage.NewMemoryRepository())
	require.NoError(t, err)
	return st
}

func writeUpload(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func sampleRecords() []RawTransaction {
	return []RawTransaction{
		{Date: "2024-06-01", Description: "Lunch", Amount: looseAmount{decimal.NewFromFloat(12.5)}, Type: "expense", Category: "Food"},
		{Date: "2024-06-02", Description: "Salary", Amount: looseAmount{decimal.NewFromInt(1000)}, Type: "income", Category: "Income"},
	}
}

func TestPipeline_TextFileHappyPath(t *testing.T) {
	st := newTestStore(t)
	extractor := &stubExtractor{records: sampleRecords()}
	p := NewPipelineWithOpener(extractor, st, stubOpener{}, nil)

	path := writeUpload(t, "statement.txt", "some receipt text")
	result, err := p.Submit(context.Background(), path)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Len(t, result.Added, 2)
	assert.Equal(t, StateIdle, p.State())
	assert.Equal(t, 2, st.Len())

	// Non-PDF uploads bypass the opener and transmit the raw bytes.
	require.Len(t, extractor.payloads, 1)
	assert.NotEqual(t, MIMEPDF, extractor.mimes[0])
}

func TestPipeline_EncryptedPDFPasswordRetry(t *testing.T) {
	st := newTestStore(t)
	extractor := &stubExtractor{records: sampleRecords()}
	p := NewPipelineWithOpener(extractor, st, stubOpener{correct: "sesame"}, nil)

	path := writeUpload(t, "statement.pdf", "%PDF-1.7 pretend")

	// No password: pipeline suspends asking for one.
	_, err := p.Submit(context.Background(), path)
	var required *scanerror.PasswordRequiredError
	require.ErrorAs(t, err, &required)
	assert.Equal(t, StateAwaitingPassword, p.State())

	// Wrong password: still suspended.
	_, err = p.SubmitPassword(context.Background(), "wrong")
	var incorrect *scanerror.IncorrectPasswordError
	require.ErrorAs(t, err, &incorrect)
	assert.Equal(t, StateAwaitingPassword, p.State())

	// Correct password: the scan completes.
	result, err := p.SubmitPassword(context.Background(), "sesame")
	require.NoError(t, err)
	assert.Len(t, result.Added, 2)
	assert.Equal(t, StateIdle, p.State())

	// Decrypted documents are transmitted as extracted text.
	require.Len(t, extractor.mimes, 1)
	assert.Equal(t, MIMEText, extractor.mimes[0])
}

func TestPipeline_UnencryptedPDFSkipsPasswordPrompt(t *testing.T) {
	st := newTestStore(t)
	extractor := &stubExtractor{records: sampleRecords()}
	p := NewPipelineWithOpener(extractor, st, passthroughOpener{}, nil)

	content := "%PDF-1.7 pretend"
	path := writeUpload(t, "statement.pdf", content)
	result, err := p.Submit(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, result.Added, 2)
	assert.Equal(t, StateIdle, p.State())

	// The raw bytes and PDF MIME type reach the extractor unchanged.
	require.Len(t, extractor.mimes, 1)
	assert.Equal(t, MIMEPDF, extractor.mimes[0])
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte(content)), extractor.payloads[0])
}

func TestPipeline_TimeoutCoversExtractionOnly(t *testing.T) {
	st := newTestStore(t)
	extractor := &deadlineExtractor{records: sampleRecords()}
	p := NewPipelineWithOpener(extractor, st, stubOpener{correct: "sesame"}, nil)
	p.SetExtractTimeout(50 * time.Millisecond)

	path := writeUpload(t, "locked.pdf", "%PDF pretend")
	_, err := p.Submit(context.Background(), path)
	var required *scanerror.PasswordRequiredError
	require.ErrorAs(t, err, &required)

	// Take longer than the extraction timeout to enter the password.
	time.Sleep(100 * time.Millisecond)

	result, err := p.SubmitPassword(context.Background(), "sesame")
	require.NoError(t, err)
	assert.Len(t, result.Added, 2)
	assert.Equal(t, 2, st.Len())
	assert.Equal(t, StateIdle, p.State())
}

func TestPipeline_FatalDocumentError(t *testing.T) {
	st := newTestStore(t)
	p := NewPipelineWithOpener(&stubExtractor{}, st, fatalOpener{}, nil)

	path := writeUpload(t, "broken.pdf", "%PDF garbage")
	_, err := p.Submit(context.Background(), path)

	var fatal *scanerror.FatalDocumentError
	require.ErrorAs(t, err, &fatal)
	assert.Equal(t, StateIdle, p.State())
	assert.Equal(t, 0, st.Len())
}

func TestPipeline_BusyRejectsSecondSubmit(t *testing.T) {
	st := newTestStore(t)
	p := NewPipelineWithOpener(&stubExtractor{}, st, stubOpener{correct: "x"}, nil)

	path := writeUpload(t, "locked.pdf", "%PDF pretend")
	_, err := p.Submit(context.Background(), path)
	var required *scanerror.PasswordRequiredError
	require.ErrorAs(t, err, &required)

	_, err = p.Submit(context.Background(), path)
	assert.ErrorIs(t, err, ErrBusy)
}

func TestPipeline_PasswordWithoutPendingDocument(t *testing.T) {
	p := NewPipelineWithOpener(&stubExtractor{}, newTestStore(t), stubOpener{}, nil)
	_, err := p.SubmitPassword(context.Background(), "whatever")
	assert.ErrorIs(t, err, ErrNoPendingDocument)
}

func TestPipeline_Cancel(t *testing.T) {
	st := newTestStore(t)
	p := NewPipelineWithOpener(&stubExtractor{records: sampleRecords()}, st, stubOpener{correct: "x"}, nil)

	path := writeUpload(t, "locked.pdf", "%PDF pretend")
	_, err := p.Submit(context.Background(), path)
	var required *scanerror.PasswordRequiredError
	require.ErrorAs(t, err, &required)

	p.Cancel()
	assert.Equal(t, StateIdle, p.State())

	_, err = p.SubmitPassword(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNoPendingDocument)
}

func TestPipeline_FileTooLarge(t *testing.T) {
	st := newTestStore(t)
	p := NewPipelineWithOpener(&stubExtractor{}, st, stubOpener{}, nil)
	p.SetMaxFileSize(4)

	path := writeUpload(t, "big.txt", "well over four bytes")
	_, err := p.Submit(context.Background(), path)

	var tooLarge *scanerror.FileTooLargeError
	require.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, StateIdle, p.State())
}

func TestPipeline_MissingFile(t *testing.T) {
	p := NewPipelineWithOpener(&stubExtractor{}, newTestStore(t), stubOpener{}, nil)

	_, err := p.Submit(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	var unreadable *scanerror.UnreadableFileError
	require.ErrorAs(t, err, &unreadable)
}

func TestPipeline_ExtractionError(t *testing.T) {
	st := newTestStore(t)
	p := NewPipelineWithOpener(&stubExtractor{err: errors.New("quota exceeded")}, st, stubOpener{}, nil)

	path := writeUpload(t, "statement.txt", "text")
	_, err := p.Submit(context.Background(), path)

	var extraction *scanerror.ExtractionError
	require.ErrorAs(t, err, &extraction)
	assert.Equal(t, StateIdle, p.State())
	assert.Equal(t, 0, st.Len())
}

func TestPipeline_EmptyResult(t *testing.T) {
	st := newTestStore(t)
	p := NewPipelineWithOpener(&stubExtractor{}, st, stubOpener{}, nil)

	path := writeUpload(t, "blank.txt", "nothing useful")
	_, err := p.Submit(context.Background(), path)

	var empty *scanerror.EmptyResultError
	require.ErrorAs(t, err, &empty)
	assert.Equal(t, 0, st.Len())
}
