package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/WeiChun0723/Moni/internal/models"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS transactions (
	position    INTEGER NOT NULL,
	id          TEXT    NOT NULL PRIMARY KEY,
	date        TEXT    NOT NULL,
	description TEXT    NOT NULL,
	amount      TEXT    NOT NULL,
	category    TEXT    NOT NULL,
	type        TEXT    NOT NULL,
	created_at  INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS settings (
	key   TEXT NOT NULL PRIMARY KEY,
	value TEXT NOT NULL
);
`

// SQLiteRepository persists state to a local SQLite database. Saves replace
// the whole collection in one transaction, matching the replace-and-persist
// semantics of the store.
type SQLiteRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

// NewSQLiteRepository opens (creating if needed) the database at dbPath.
func NewSQLiteRepository(dbPath string, logger *logrus.Logger) (*SQLiteRepository, error) {
	if logger == nil {
		logger = logrus.New()
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return nil, fmt.Errorf("error creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("error opening sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error pinging sqlite database: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error creating schema: %w", err)
	}

	return &SQLiteRepository{db: db, log: logger}, nil
}

// Close releases the underlying database handle.
func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// LoadTransactions implements Repository. Rows that cannot be decoded are
// skipped with a warning rather than failing the whole load.
func (r *SQLiteRepository) LoadTransactions() ([]models.Transaction, error) {
	rows, err := r.db.Query(
		`SELECT id, date, description, amount, category, type, created_at
		 FROM transactions ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("error querying transactions: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			r.log.WithError(err).Warn("Failed to close rows")
		}
	}()

	var txs []models.Transaction
	for rows.Next() {
		var t models.Transaction
		var amount, category, txType string
		if err := rows.Scan(&t.ID, &t.Date, &t.Description, &amount, &category, &txType, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning transaction row: %w", err)
		}

		dec, err := decimal.NewFromString(amount)
		if err != nil {
			r.log.WithError(err).WithField("id", t.ID).Warn("Skipping transaction with bad amount")
			continue
		}
		t.Amount = dec
		t.Category = models.Category(category)
		t.Type = models.TransactionType(txType)
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading transaction rows: %w", err)
	}

	return txs, nil
}

// SaveTransactions implements Repository.
func (r *SQLiteRepository) SaveTransactions(txs []models.Transaction) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.Exec(`DELETE FROM transactions`); err != nil {
		return fmt.Errorf("error clearing transactions: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO transactions (position, id, date, description, amount, category, type, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("error preparing insert: %w", err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			r.log.WithError(err).Warn("Failed to close statement")
		}
	}()

	for i, t := range txs {
		if _, err := stmt.Exec(i, t.ID, t.Date, t.Description, t.Amount.String(),
			string(t.Category), string(t.Type), t.CreatedAt); err != nil {
			return fmt.Errorf("error inserting transaction %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transactions: %w", err)
	}

	r.log.WithField("count", len(txs)).Debug("Persisted transactions to sqlite")
	return nil
}

// LoadCurrency implements Repository.
func (r *SQLiteRepository) LoadCurrency() (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM settings WHERE key = 'currency'`).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("error loading currency: %w", err)
	}
	return value, nil
}

// SaveCurrency implements Repository.
func (r *SQLiteRepository) SaveCurrency(code string) error {
	_, err := r.db.Exec(
		`INSERT INTO settings (key, value) VALUES ('currency', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, code)
	if err != nil {
		return fmt.Errorf("error saving currency: %w", err)
	}
	return nil
}
