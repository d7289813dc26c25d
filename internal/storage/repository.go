// Package storage provides the durable persistence backends for application
// state: the full transaction collection and the selected display currency.
// Backends are interchangeable behind the Repository port so the store can be
// unit tested without touching a real medium.
package storage

import "github.com/WeiChun0723/Moni/internal/models"

// Repository is the persistence port of the transaction store. Saves always
// write the entire collection; there are no partial updates.
type Repository interface {
	// LoadTransactions returns the persisted collection in stored order.
	// Missing or unparsable state yields an empty collection, not an error.
	LoadTransactions() ([]models.Transaction, error)

	// SaveTransactions replaces the persisted collection.
	SaveTransactions(txs []models.Transaction) error

	// LoadCurrency returns the persisted currency code, or "" when unset.
	LoadCurrency() (string, error)

	// SaveCurrency replaces the persisted currency code.
	SaveCurrency(code string) error
}
