package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/WeiChun0723/Moni/internal/models"
)

// stateVersion tags the on-disk document so a future layout change can be
// detected on read.
const stateVersion = 1

// stateDocument is the single JSON document holding all durable state.
type stateDocument struct {
	Version      int                  `json:"version"`
	Currency     string               `json:"currency,omitempty"`
	Transactions []models.Transaction `json:"transactions"`
}

// JSONFileRepository persists state to a single JSON file. It fails soft on
// read: a missing or corrupt file is treated as empty state so a bad document
// can never wedge the application.
type JSONFileRepository struct {
	path string
	log  *logrus.Logger
}

// NewJSONFileRepository creates a repository backed by the given file path.
func NewJSONFileRepository(path string, logger *logrus.Logger) *JSONFileRepository {
	if logger == nil {
		logger = logrus.New()
	}
	return &JSONFileRepository{path: path, log: logger}
}

// LoadTransactions implements Repository.
func (r *JSONFileRepository) LoadTransactions() ([]models.Transaction, error) {
	doc := r.readDocument()
	return doc.Transactions, nil
}

// SaveTransactions implements Repository.
func (r *JSONFileRepository) SaveTransactions(txs []models.Transaction) error {
	doc := r.readDocument()
	doc.Transactions = txs
	return r.writeDocument(doc)
}

// LoadCurrency implements Repository.
func (r *JSONFileRepository) LoadCurrency() (string, error) {
	return r.readDocument().Currency, nil
}

// SaveCurrency implements Repository.
func (r *JSONFileRepository) SaveCurrency(code string) error {
	doc := r.readDocument()
	doc.Currency = code
	return r.writeDocument(doc)
}

// readDocument loads the state file, returning an empty document when the
// file is missing or cannot be parsed.
func (r *JSONFileRepository) readDocument() stateDocument {
	doc := stateDocument{Version: stateVersion}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			r.log.WithError(err).WithField("file", r.path).Warn("Cannot read state file, starting empty")
		}
		return doc
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		r.log.WithError(err).WithField("file", r.path).Warn("State file is not valid JSON, starting empty")
		return stateDocument{Version: stateVersion}
	}

	doc.Version = stateVersion
	return doc
}

// writeDocument serializes the document and replaces the state file through a
// temp-file rename so a crash mid-write never leaves a truncated document.
func (r *JSONFileRepository) writeDocument(doc stateDocument) error {
	if doc.Transactions == nil {
		doc.Transactions = []models.Transaction{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling state: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("error creating state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".moni-state-*.json")
	if err != nil {
		return fmt.Errorf("error creating temp state file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("error writing state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("error closing state file: %w", err)
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("error replacing state file: %w", err)
	}

	r.log.WithFields(logrus.Fields{
		"file":  r.path,
		"count": len(doc.Transactions),
	}).Debug("Persisted state file")

	return nil
}
