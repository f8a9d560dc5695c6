package analysis

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finpress-backend/internal/domains/content"
)

func draftAnalysis(t *testing.T) *Analysis {
	t.Helper()

	authorID := uuid.New()
	slug, err := content.SlugFromTitle("BBRI Technical Outlook Q3")
	require.NoError(t, err)
	ticker, err := NewStockTicker("BBRI")
	require.NoError(t, err)

	a, err := New(CreateProps{
		ID:       uuid.New(),
		Slug:     slug,
		Title:    "BBRI Technical Outlook Q3",
		Content:  strings.Repeat("Support and resistance levels. ", 5),
		Ticker:   ticker,
		Type:     TypeTechnical,
		AuthorID: &authorID,
	})
	require.NoError(t, err)
	return a
}

func TestNewAnalysisStartsInDraft(t *testing.T) {
	a := draftAnalysis(t)

	assert.Equal(t, content.StatusDraft, a.Status)
	assert.Equal(t, StockTicker("BBRI"), a.Ticker)
	assert.Equal(t, TypeTechnical, a.Type)
	assert.Nil(t, a.TargetPrice)
}

func TestNewAnalysisTitleAndContentThresholds(t *testing.T) {
	slug, err := content.SlugFromTitle("some-title")
	require.NoError(t, err)
	ticker, err := NewStockTicker("BBCA")
	require.NoError(t, err)

	longContent := strings.Repeat("a", 50)

	tests := []struct {
		name    string
		title   string
		content string
		wantErr string
	}{
		{name: "short title", title: "Short", content: longContent, wantErr: "Title must be at least 10 characters"},
		{name: "one below title minimum", title: strings.Repeat("a", 9), content: longContent, wantErr: "Title must be at least 10 characters"},
		{name: "boundary title ok", title: strings.Repeat("a", 10), content: longContent},
		{name: "short content", title: "Long enough title", content: strings.Repeat("a", 49), wantErr: "Content must be at least 50 characters"},
		{name: "boundary content ok", title: "Long enough title", content: longContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(CreateProps{
				ID:      uuid.New(),
				Slug:    slug,
				Title:   tt.title,
				Content: tt.content,
				Ticker:  ticker,
				Type:    TypeFundamental,
			})
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestTargetPriceRejectsNegative(t *testing.T) {
	slug, err := content.SlugFromTitle("some-title")
	require.NoError(t, err)
	ticker, err := NewStockTicker("TLKM")
	require.NoError(t, err)

	negative := decimal.NewFromInt(-100)
	_, err = New(CreateProps{
		ID:          uuid.New(),
		Slug:        slug,
		Title:       "Long enough title",
		Content:     strings.Repeat("a", 50),
		Ticker:      ticker,
		Type:        TypeFundamental,
		TargetPrice: &negative,
	})
	require.Error(t, err)
	assert.Equal(t, "Target price must be positive", err.Error())

	zero := decimal.Zero
	_, err = New(CreateProps{
		ID:          uuid.New(),
		Slug:        slug,
		Title:       "Long enough title",
		Content:     strings.Repeat("a", 50),
		Ticker:      ticker,
		Type:        TypeFundamental,
		TargetPrice: &zero,
	})
	require.NoError(t, err)
}

func TestAnalysisUpdateGuard(t *testing.T) {
	a := draftAnalysis(t)
	require.NoError(t, a.SubmitForReview())

	newTitle := "Revised outlook for BBRI"
	err := a.Update(UpdateProps{ContentUpdate: content.ContentUpdate{Title: &newTitle}})
	require.Error(t, err)
	assert.Equal(t, "Can only update analysis in DRAFT status", err.Error())
}

func TestAnalysisUpdateFields(t *testing.T) {
	a := draftAnalysis(t)

	ticker, err := NewStockTicker("GOTO")
	require.NoError(t, err)
	typ := TypeSentiment
	price := decimal.NewFromInt(85)

	require.NoError(t, a.Update(UpdateProps{
		Ticker:      &ticker,
		Type:        &typ,
		TargetPrice: &price,
	}))

	assert.Equal(t, StockTicker("GOTO"), a.Ticker)
	assert.Equal(t, TypeSentiment, a.Type)
	require.NotNil(t, a.TargetPrice)
	assert.True(t, price.Equal(*a.TargetPrice))

	negative := decimal.NewFromInt(-1)
	err = a.Update(UpdateProps{TargetPrice: &negative})
	require.Error(t, err)
	assert.Equal(t, "Target price must be positive", err.Error())
}

func TestAnalysisSubmitAndPublish(t *testing.T) {
	a := draftAnalysis(t)
	editorID := uuid.New()

	require.NoError(t, a.SubmitForReview())
	err := a.SubmitForReview()
	require.Error(t, err)
	assert.Equal(t, "Can only submit DRAFT analysis for review", err.Error())

	require.NoError(t, a.Publish(editorID))
	assert.Equal(t, content.StatusPublished, a.Status)
	require.NotNil(t, a.EditorID)
	assert.Equal(t, editorID, *a.EditorID)
	assert.NotNil(t, a.PublishedAt)
}

func TestNewStockTicker(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr string
	}{
		{name: "plain", input: "BBRI", want: "BBRI"},
		{name: "lowercase and padded", input: "  bbri  ", want: "BBRI"},
		{name: "alphanumeric", input: "brk4", want: "BRK4"},
		{name: "empty", input: "", wantErr: "Stock ticker is required"},
		{name: "whitespace only", input: "   ", wantErr: "Stock ticker is required"},
		{name: "too long", input: strings.Repeat("A", 21), wantErr: "Stock ticker must be 20 characters or less"},
		{name: "hyphen", input: "BBR-I", wantErr: "Stock ticker must contain only alphanumeric characters"},
		{name: "dot", input: "BRK.B", wantErr: "Stock ticker must contain only alphanumeric characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticker, err := NewStockTicker(tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ticker.String())
		})
	}
}

func TestParseAnalysisType(t *testing.T) {
	tests := []struct {
		input string
		want  AnalysisType
	}{
		{input: "TECHNICAL", want: TypeTechnical},
		{input: "technical", want: TypeTechnical},
		{input: "Fundamental", want: TypeFundamental},
		{input: "sentiment", want: TypeSentiment},
		{input: "market_update", want: TypeMarketUpdate},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAnalysisType(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAnalysisTypeInvalid(t *testing.T) {
	_, err := ParseAnalysisType("INVALID")
	require.Error(t, err)
	assert.Equal(t, "Invalid analysis type: INVALID. Must be one of: TECHNICAL, FUNDAMENTAL, SENTIMENT, MARKET_UPDATE", err.Error())
}
