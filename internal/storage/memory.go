package storage

import "github.com/WeiChun0723/Moni/internal/models"

// MemoryRepository keeps state in process memory only. It backs ephemeral
// runs and unit tests.
type MemoryRepository struct {
	transactions []models.Transaction
	currency     string
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// LoadTransactions implements Repository.
func (r *MemoryRepository) LoadTransactions() ([]models.Transaction, error) {
	out := make([]models.Transaction, len(r.transactions))
	copy(out, r.transactions)
	return out, nil
}

// SaveTransactions implements Repository.
func (r *MemoryRepository) SaveTransactions(txs []models.Transaction) error {
	r.transactions = make([]models.Transaction, len(txs))
	copy(r.transactions, txs)
	return nil
}

// LoadCurrency implements Repository.
func (r *MemoryRepository) LoadCurrency() (string, error) {
	return r.currency, nil
}

// SaveCurrency implements Repository.
func (r *MemoryRepository) SaveCurrency(code string) error {
	r.currency = code
	return nil
}
