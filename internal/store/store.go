// Package store holds the in-memory transaction collection and keeps it
// synchronized with durable storage on every mutation.
package store

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/WeiChun0723/Moni/internal/currency"
	"github.com/WeiChun0723/Moni/internal/models"
	"github.com/WeiChun0723/Moni/internal/storage"
)

// Store is the process-wide transaction collection. The full collection is
// always materialized in memory; every successful mutation is persisted
// before it is visible to readers. A failed persist rolls the mutation back,
// so in-memory state never runs ahead of durable state.
type Store struct {
	mu           sync.Mutex
	repo         storage.Repository
	transactions []models.Transaction // newest-first insertion order
	currency     string
	fallback     string
	lastCreated  int64
}

// New loads the persisted collection and currency into a ready-to-use store.
func New(repo storage.Repository) (*Store, error) {
	txs, err := repo.LoadTransactions()
	if err != nil {
		return nil, fmt.Errorf("error loading transactions: %w", err)
	}

	code, err := repo.LoadCurrency()
	if err != nil {
		return nil, fmt.Errorf("error loading currency: %w", err)
	}

	s := &Store{
		repo:         repo,
		transactions: txs,
		currency:     code,
	}
	for _, t := range txs {
		if t.CreatedAt > s.lastCreated {
			s.lastCreated = t.CreatedAt
		}
	}
	return s, nil
}

// Add assigns identity and insertion order to the record, prepends it to the
// collection and persists. The stored record is returned.
func (s *Store) Add(t models.Transaction) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := t.Validate(); err != nil {
		return models.Transaction{}, err
	}

	t.ID = models.NewID()
	t.CreatedAt = s.nextCreatedAt(1)

	updated := make([]models.Transaction, 0, len(s.transactions)+1)
	updated = append(updated, t)
	updated = append(updated, s.transactions...)

	if err := s.persist(updated); err != nil {
		return models.Transaction{}, err
	}
	s.transactions = updated
	return t, nil
}

// AddBatch adds all records as one logical insertion. Batch members share a
// single insertion moment with strictly increasing offsets so their relative
// order survives any later sort that tie-breaks on insertion order.
func (s *Store) AddBatch(records []models.Transaction) ([]models.Transaction, error) {
	if len(records) == 0 {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range records {
		if err := records[i].Validate(); err != nil {
			return nil, fmt.Errorf("invalid record %d in batch: %w", i, err)
		}
	}

	base := s.nextCreatedAt(len(records))
	added := make([]models.Transaction, len(records))
	for i, t := range records {
		t.ID = models.NewID()
		t.CreatedAt = base + int64(i)
		added[i] = t
	}

	// Prepending each member in order means the last batch member ends up
	// first, the same shape a loop of single Adds would produce.
	updated := make([]models.Transaction, 0, len(s.transactions)+len(added))
	for i := len(added) - 1; i >= 0; i-- {
		updated = append(updated, added[i])
	}
	updated = append(updated, s.transactions...)

	if err := s.persist(updated); err != nil {
		return nil, err
	}
	s.transactions = updated
	return added, nil
}

// Remove deletes the record with the given id. Removing an absent id is a
// no-op and does not touch durable storage.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, t := range s.transactions {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	updated := make([]models.Transaction, 0, len(s.transactions)-1)
	updated = append(updated, s.transactions[:idx]...)
	updated = append(updated, s.transactions[idx+1:]...)

	if err := s.persist(updated); err != nil {
		return err
	}
	s.transactions = updated
	return nil
}

// List returns the collection in canonical display order: date descending,
// then insertion order descending (newest first within a day).
func (s *Store) List() []models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Transaction, len(s.transactions))
	copy(out, s.transactions)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return out
}

// Len returns the number of stored transactions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.transactions)
}

// Currency returns the active display currency code, falling back to the
// configured default when none has been selected yet.
func (s *Store) Currency() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currency == "" {
		if s.fallback != "" {
			return s.fallback
		}
		return currency.DefaultCode
	}
	return s.currency
}

// SetFallbackCurrency sets the code reported while no currency has been
// persisted. It does not touch durable storage; unsupported codes are ignored.
func (s *Store) SetFallbackCurrency(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if currency.IsSupported(code) {
		s.fallback = currency.Lookup(code).Code
	}
}

// SetCurrency selects and persists the active display currency.
func (s *Store) SetCurrency(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !currency.IsSupported(code) {
		return fmt.Errorf("unsupported currency code: %s", code)
	}

	cfg := currency.Lookup(code)
	if err := s.repo.SaveCurrency(cfg.Code); err != nil {
		return fmt.Errorf("error persisting currency: %w", err)
	}
	s.currency = cfg.Code
	return nil
}

// persist writes the candidate collection to durable storage.
func (s *Store) persist(txs []models.Transaction) error {
	if err := s.repo.SaveTransactions(txs); err != nil {
		return fmt.Errorf("error persisting transactions: %w", err)
	}
	return nil
}

// nextCreatedAt reserves n strictly increasing insertion-sequence values and
// returns the first. Values are anchored to wall-clock milliseconds but never
// go backwards, even when timestamps collide at millisecond granularity.
func (s *Store) nextCreatedAt(n int) int64 {
	base := time.Now().UnixMilli()
	if base <= s.lastCreated {
		base = s.lastCreated + 1
	}
	s.lastCreated = base + int64(n) - 1
	return base
}
