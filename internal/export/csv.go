// Package export writes the transaction collection to external formats.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"

	"github.com/WeiChun0723/Moni/internal/config"
	"github.com/WeiChun0723/Moni/internal/models"
)

// Use the centralized logger from config package
var log = config.Logger

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// WriteTransactionsToCSV writes transactions to a CSV file.
func WriteTransactionsToCSV(transactions []models.Transaction, csvFile string) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}

	log.WithFields(logrus.Fields{
		"file":  csvFile,
		"count": len(transactions),
	}).Info("Writing transactions to CSV file")

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, 0750); err != nil {
		log.WithError(err).Error("Failed to create directory")
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		log.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := MarshalTransactions(transactions, file); err != nil {
		log.WithError(err).Error("Failed to marshal transactions to CSV")
		return err
	}

	log.WithFields(logrus.Fields{
		"file":  csvFile,
		"count": len(transactions),
	}).Info("Successfully wrote transactions to CSV file")

	return nil
}

// MarshalTransactions writes transactions as CSV to any writer. Amounts are
// fixed to two decimal places before marshaling.
func MarshalTransactions(transactions []models.Transaction, w io.Writer) error {
	rows := make([]models.Transaction, len(transactions))
	copy(rows, transactions)
	for i := range rows {
		rows[i].Amount = rows[i].Amount.Round(2)
	}

	csvWriter := csv.NewWriter(w)
	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}
