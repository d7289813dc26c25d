package extraction

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// RawTransaction is one loosely-typed candidate record returned by the
// extraction service. Any field may be absent or malformed; normalization
// fills the gaps.
type RawTransaction struct {
	Date        string      `json:"date"`
	Description string      `json:"description"`
	Amount      looseAmount `json:"amount"`
	Type        string      `json:"type"`
	Category    string      `json:"category"`
}

// looseAmount decodes a JSON number, a quoted number, or null. Values that
// cannot be parsed decode to zero so one bad field never discards the whole
// response.
type looseAmount struct {
	decimal.Decimal
}

func (a *looseAmount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	s = strings.Trim(s, `"`)
	if s == "" || s == "null" {
		a.Decimal = decimal.Zero
		return nil
	}

	dec, err := decimal.NewFromString(s)
	if err != nil {
		a.Decimal = decimal.Zero
		return nil
	}
	a.Decimal = dec
	return nil
}

// DecodeResponse parses the service response text into raw records after
// stripping incidental wrapper formatting such as markdown code fences.
func DecodeResponse(text string) ([]RawTransaction, error) {
	cleaned := StripWrapperMarkers(text)
	if cleaned == "" {
		return nil, nil
	}

	var records []RawTransaction
	if err := json.Unmarshal([]byte(cleaned), &records); err != nil {
		return nil, fmt.Errorf("response is not a valid transaction array: %w", err)
	}
	return records, nil
}

// StripWrapperMarkers removes known wrapper markers the model tends to add
// around its JSON output: markdown code fences and surrounding prose.
func StripWrapperMarkers(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```") {
		if i := strings.Index(s, "\n"); i >= 0 {
			s = s[i+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
		s = strings.TrimSpace(s)
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}

	// Keep only the outermost JSON array when the model wraps it in prose.
	if i := strings.Index(s, "["); i >= 0 {
		if j := strings.LastIndex(s, "]"); j > i {
			s = s[i : j+1]
		}
	}
	return s
}
