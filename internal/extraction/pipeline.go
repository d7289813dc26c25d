// Package extraction implements the statement-scanning pipeline: file read,
// optional PDF decryption with password retry, payload encoding, one remote
// extraction call, and normalization of the results into the store.
package extraction

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/WeiChun0723/Moni/internal/models"
	"github.com/WeiChun0723/Moni/internal/scanerror"
	"github.com/WeiChun0723/Moni/internal/store"
)

// State identifies where a pipeline instance is in processing an upload.
type State string

const (
	StateIdle             State = "idle"
	StateReading          State = "reading"
	StatePreparing        State = "preparing"
	StateAwaitingPassword State = "awaiting_password"
	StateEncoding         State = "encoding"
	StateExtracting       State = "extracting"
	StateNormalizing      State = "normalizing"
)

// ErrBusy is returned when a new upload is submitted while one is in flight.
var ErrBusy = errors.New("a scan is already in progress")

// ErrNoPendingDocument is returned when a password arrives without a
// suspended document to apply it to.
var ErrNoPendingDocument = errors.New("no document is awaiting a password")

// DefaultMaxFileSize caps uploads at 20 MB.
const DefaultMaxFileSize int64 = 20 << 20

// Result reports a completed scan.
type Result struct {
	// Added holds the normalized records as stored, ids assigned.
	Added []models.Transaction
}

// Pipeline processes one upload at a time. Exactly one of Submit,
// SubmitPassword or Cancel drives it forward; there is no internal
// concurrency. When an encrypted PDF is hit the pipeline suspends in
// StateAwaitingPassword with the file buffer retained, and resumes on
// SubmitPassword with unlimited retries.
type Pipeline struct {
	extractor Extractor
	store     *store.Store
	opener    DocumentOpener
	maxSize   int64
	timeout   time.Duration
	log       *logrus.Logger

	state    State
	path     string
	buf      []byte
	mimeType string
}

// NewPipeline creates a pipeline with the production PDF opener.
func NewPipeline(extractor Extractor, st *store.Store, logger *logrus.Logger) *Pipeline {
	return NewPipelineWithOpener(extractor, st, NewPDFOpener(), logger)
}

// NewPipelineWithOpener creates a pipeline with a custom document opener.
// Tests use this to exercise the password flow without PDF fixtures.
func NewPipelineWithOpener(extractor Extractor, st *store.Store, opener DocumentOpener, logger *logrus.Logger) *Pipeline {
	if logger == nil {
		logger = logrus.New()
	}
	return &Pipeline{
		extractor: extractor,
		store:     st,
		opener:    opener,
		maxSize:   DefaultMaxFileSize,
		log:       logger,
		state:     StateIdle,
	}
}

// SetMaxFileSize overrides the upload size limit.
func (p *Pipeline) SetMaxFileSize(limit int64) {
	if limit > 0 {
		p.maxSize = limit
	}
}

// SetExtractTimeout bounds each remote extraction call. Zero means no limit.
func (p *Pipeline) SetExtractTimeout(d time.Duration) {
	p.timeout = d
}

// State returns the pipeline's current state.
func (p *Pipeline) State() State {
	return p.state
}

// Submit starts processing an upload. It returns the scan result, or an
// error from the scanerror taxonomy. A PasswordRequiredError leaves the
// pipeline suspended; every other error returns it to idle with no partial
// state retained.
func (p *Pipeline) Submit(ctx context.Context, path string) (*Result, error) {
	if p.state != StateIdle {
		return nil, ErrBusy
	}

	p.state = StateReading
	p.path = path

	info, err := os.Stat(path)
	if err != nil {
		p.reset()
		return nil, &scanerror.UnreadableFileError{Path: path, Err: err}
	}
	if info.Size() > p.maxSize {
		size := info.Size()
		p.reset()
		return nil, &scanerror.FileTooLargeError{Path: path, Size: size, Limit: p.maxSize}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		p.reset()
		return nil, &scanerror.UnreadableFileError{Path: path, Err: err}
	}

	p.buf = data
	p.mimeType = DetectMIMEType(path, data)

	p.log.WithFields(logrus.Fields{
		"file":      path,
		"mime_type": p.mimeType,
		"bytes":     len(data),
	}).Info("Scanning document")

	return p.prepare(ctx, "")
}

// SubmitPassword resumes a pipeline suspended on an encrypted PDF.
func (p *Pipeline) SubmitPassword(ctx context.Context, password string) (*Result, error) {
	if p.state != StateAwaitingPassword {
		return nil, ErrNoPendingDocument
	}
	return p.prepare(ctx, password)
}

// Cancel discards the retained buffer and returns the pipeline to idle.
func (p *Pipeline) Cancel() {
	p.reset()
}

// prepare runs the pipeline from the Preparing state onward.
func (p *Pipeline) prepare(ctx context.Context, password string) (*Result, error) {
	p.state = StatePreparing

	payload := p.buf
	mimeType := p.mimeType

	if p.mimeType == MIMEPDF {
		opened, openedMIME, err := p.opener.Open(p.buf, password)
		if err != nil {
			if ClassifyOpenError(err) == PasswordFailure {
				// Suspend, keep the buffer, let the user retry.
				p.state = StateAwaitingPassword
				if password == "" {
					return nil, &scanerror.PasswordRequiredError{Path: p.path}
				}
				p.log.WithField("file", p.path).Info("Wrong PDF password, awaiting retry")
				return nil, &scanerror.IncorrectPasswordError{Path: p.path}
			}
			path := p.path
			p.reset()
			return nil, &scanerror.FatalDocumentError{Path: path, Err: err}
		}
		payload = opened
		mimeType = openedMIME
	}

	p.state = StateEncoding
	encoded := base64.StdEncoding.EncodeToString(payload)

	p.state = StateExtracting
	// The timeout starts at the call, not at Submit, so time spent waiting
	// for a password never counts against it.
	extractCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		extractCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	raw, err := p.extractor.Extract(extractCtx, encoded, mimeType)
	if err != nil {
		p.reset()
		return nil, &scanerror.ExtractionError{Err: err}
	}
	if len(raw) == 0 {
		p.reset()
		return nil, &scanerror.EmptyResultError{}
	}

	p.state = StateNormalizing
	records := Normalize(raw, time.Now())

	added, err := p.store.AddBatch(records)
	if err != nil {
		p.reset()
		return nil, err
	}

	p.log.WithField("count", len(added)).Info("Scan complete")
	p.reset()
	return &Result{Added: added}, nil
}

// reset clears all per-upload state and returns the pipeline to idle.
func (p *Pipeline) reset() {
	p.state = StateIdle
	p.path = ""
	p.buf = nil
	p.mimeType = ""
}
