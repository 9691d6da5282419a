// Package output renders analysis results as text reports, JSON documents
// and console tables.
package output

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// Supported report formats.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatTable = "table"
)

// FormatCurrency formats a decimal as currency.
func FormatCurrency(amount decimal.Decimal) string {
	return "£" + amount.StringFixed(2)
}

// FormatPercent formats a percentage with one decimal place.
func FormatPercent(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

// WriteJSON writes any result record as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return err
	}
	return nil
}
