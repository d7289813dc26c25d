package extraction

import (
	"strings"
	"time"

	"github.com/WeiChun0723/Moni/internal/models"
)

// DefaultDescription labels extracted records that came back without one.
const DefaultDescription = "Unnamed Transaction"

// Normalize converts raw extraction results into transaction records ready
// for the store, filling missing fields with safe defaults: today's date, a
// placeholder description, the catch-all category and the expense type.
// Amounts are coerced to their absolute value; the sign never carries
// meaning, only the type does.
func Normalize(raw []RawTransaction, now time.Time) []models.Transaction {
	today := now.Format(models.DateLayout)

	records := make([]models.Transaction, 0, len(raw))
	for _, r := range raw {
		date := strings.TrimSpace(r.Date)
		if _, err := time.Parse(models.DateLayout, date); err != nil {
			date = today
		}

		description := strings.TrimSpace(r.Description)
		if description == "" {
			description = DefaultDescription
		}

		records = append(records, models.Transaction{
			Date:        date,
			Description: description,
			Amount:      r.Amount.Abs(),
			Category:    models.NormalizeCategory(r.Category),
			Type:        models.ParseTransactionType(r.Type),
		})
	}
	return records
}
