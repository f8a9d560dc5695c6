package analysis

import (
	"fmt"
	"strings"

	"finpress-backend/internal/domains/content"
)

// AnalysisType classifies a piece of stock analysis.
type AnalysisType string

const (
	TypeTechnical    AnalysisType = "TECHNICAL"
	TypeFundamental  AnalysisType = "FUNDAMENTAL"
	TypeSentiment    AnalysisType = "SENTIMENT"
	TypeMarketUpdate AnalysisType = "MARKET_UPDATE"
)

var validTypes = []AnalysisType{TypeTechnical, TypeFundamental, TypeSentiment, TypeMarketUpdate}

// ParseAnalysisType accepts any casing of a known type name.
func ParseAnalysisType(value string) (AnalysisType, error) {
	upper := AnalysisType(strings.ToUpper(value))
	for _, t := range validTypes {
		if t == upper {
			return t, nil
		}
	}

	names := make([]string, len(validTypes))
	for i, t := range validTypes {
		names[i] = string(t)
	}
	return "", content.NewValidationError(
		fmt.Sprintf("Invalid analysis type: %s. Must be one of: %s", value, strings.Join(names, ", ")),
	)
}

func (t AnalysisType) String() string {
	return string(t)
}

func (t AnalysisType) IsValid() bool {
	for _, v := range validTypes {
		if t == v {
			return true
		}
	}
	return false
}
