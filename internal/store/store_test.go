package store

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WeiChun0723/Moni/internal/currency"
	"github.com/WeiChun0723/Moni/internal/models"
	"github.com/WeiChun0723/Moni/internal/storage"
)

// failingRepository rejects every save, for rollback tests.
type failingRepository struct {
	storage.MemoryRepository
}

func (r *failingRepository) SaveTransactions(txs []models.Transaction) error {
	return errors.New("disk full")
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(storage.NewMemoryRepository())
	require.NoError(t, err)
	return s
}

func expense(date, desc, amount string) models.Transaction {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		panic(err)
	}
	return models.Transaction{
		Date:        date,
		Description: desc,
		Amount:      value,
		Category:    models.CategoryFood,
		Type:        models.TypeExpense,
	}
}

func TestStoreAdd(t *testing.T) {
	s := newTestStore(t)

	added, err := s.Add(expense("2024-06-01", "Lunch", "12.5"))
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)
	assert.NotZero(t, added.CreatedAt)
	assert.Equal(t, 1, s.Len())
}

func TestStoreAdd_Invalid(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Add(expense("2024-06-01", "", "10"))
	assert.Error(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestStoreAdd_RollbackOnPersistFailure(t *testing.T) {
	s, err := New(&failingRepository{})
	require.NoError(t, err)

	_, err = s.Add(expense("2024-06-01", "Lunch", "10"))
	assert.Error(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestStoreList_Ordering(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Add(expense("2024-06-02", "older day first", "1"))
	require.NoError(t, err)
	_, err = s.Add(expense("2024-06-05", "newest day", "2"))
	require.NoError(t, err)
	_, err = s.Add(expense("2024-06-02", "same day, added later", "3"))
	require.NoError(t, err)

	txs := s.List()
	require.Len(t, txs, 3)
	assert.Equal(t, "newest day", txs[0].Description)
	assert.Equal(t, "same day, added later", txs[1].Description)
	assert.Equal(t, "older day first", txs[2].Description)
}

func TestStoreAddBatch(t *testing.T) {
	s := newTestStore(t)

	batch := []models.Transaction{
		expense("2024-06-01", "first", "1"),
		expense("2024-06-01", "second", "2"),
		expense("2024-06-01", "third", "3"),
	}

	added, err := s.AddBatch(batch)
	require.NoError(t, err)
	require.Len(t, added, 3)

	// Batch members get strictly increasing insertion sequence values.
	assert.Less(t, added[0].CreatedAt, added[1].CreatedAt)
	assert.Less(t, added[1].CreatedAt, added[2].CreatedAt)

	// Display order within one day is newest insertion first.
	txs := s.List()
	assert.Equal(t, "third", txs[0].Description)
	assert.Equal(t, "second", txs[1].Description)
	assert.Equal(t, "first", txs[2].Description)
}

func TestStoreAddBatch_AllOrNothing(t *testing.T) {
	s := newTestStore(t)

	batch := []models.Transaction{
		expense("2024-06-01", "good", "1"),
		expense("2024-06-01", "", "2"),
	}

	_, err := s.AddBatch(batch)
	assert.Error(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestStoreAddBatch_Empty(t *testing.T) {
	s := newTestStore(t)
	added, err := s.AddBatch(nil)
	assert.NoError(t, err)
	assert.Nil(t, added)
}

func TestStoreRemove(t *testing.T) {
	s := newTestStore(t)

	added, err := s.Add(expense("2024-06-01", "Lunch", "10"))
	require.NoError(t, err)

	require.NoError(t, s.Remove(added.ID))
	assert.Equal(t, 0, s.Len())

	// Removing an absent id is a no-op.
	require.NoError(t, s.Remove("no-such-id"))
}

func TestStore_CreatedAtNeverGoesBackwards(t *testing.T) {
	s := newTestStore(t)

	var last int64
	for i := 0; i < 10; i++ {
		added, err := s.Add(expense("2024-06-01", "tick", "1"))
		require.NoError(t, err)
		assert.Greater(t, added.CreatedAt, last)
		last = added.CreatedAt
	}
}

func TestStore_PersistenceRoundTrip(t *testing.T) {
	repo := storage.NewMemoryRepository()

	s1, err := New(repo)
	require.NoError(t, err)
	added, err := s1.Add(expense("2024-06-01", "Lunch", "12.5"))
	require.NoError(t, err)
	require.NoError(t, s1.SetCurrency("USD"))

	// A second store over the same repository sees everything.
	s2, err := New(repo)
	require.NoError(t, err)
	txs := s2.List()
	require.Len(t, txs, 1)
	assert.Equal(t, added.ID, txs[0].ID)
	assert.Equal(t, "USD", s2.Currency())

	// New insertions keep ordering after the reload.
	later, err := s2.Add(expense("2024-06-01", "Dinner", "20"))
	require.NoError(t, err)
	assert.Greater(t, later.CreatedAt, added.CreatedAt)
}

func TestStoreCurrency_Fallback(t *testing.T) {
	s := newTestStore(t)

	s.SetFallbackCurrency("EUR")
	assert.Equal(t, "EUR", s.Currency())

	// Unsupported fallback codes are ignored.
	s.SetFallbackCurrency("CHF")
	assert.Equal(t, "EUR", s.Currency())

	// A persisted selection wins over the fallback.
	require.NoError(t, s.SetCurrency("USD"))
	assert.Equal(t, "USD", s.Currency())
}

func TestStoreCurrency(t *testing.T) {
	s := newTestStore(t)
	assert.Equal(t, currency.DefaultCode, s.Currency())

	require.NoError(t, s.SetCurrency("sgd"))
	assert.Equal(t, "SGD", s.Currency())

	assert.Error(t, s.SetCurrency("CHF"))
	assert.Equal(t, "SGD", s.Currency())
}
