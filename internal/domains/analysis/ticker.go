package analysis

import (
	"regexp"
	"strings"

	"finpress-backend/internal/domains/content"
)

const tickerMaxLength = 20

var tickerPattern = regexp.MustCompile(`^[A-Z0-9]+$`)

// StockTicker is an exchange symbol such as BBRI or TLKM. Input is trimmed
// and uppercased before validation, so "  bbri  " and "BBRI" are the same
// ticker.
type StockTicker string

// NewStockTicker normalizes and validates a raw ticker symbol.
func NewStockTicker(value string) (StockTicker, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))

	if normalized == "" {
		return "", content.NewValidationError("Stock ticker is required")
	}
	if len(normalized) > tickerMaxLength {
		return "", content.NewValidationError("Stock ticker must be 20 characters or less")
	}
	if !tickerPattern.MatchString(normalized) {
		return "", content.NewValidationError("Stock ticker must contain only alphanumeric characters")
	}

	return StockTicker(normalized), nil
}

func (t StockTicker) String() string {
	return string(t)
}
