package search

import (
	"fmt"
	"testing"

	"github.com/newthinker/stockdeck/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var catalog = []core.SearchEntry{
	{Symbol: "AAPL", Name: "Apple Inc", Type: "EQUITY", Region: "NMS", Currency: "USD"},
	{Symbol: "MSFT", Name: "Microsoft Corporation", Type: "EQUITY", Region: "NMS", Currency: "USD"},
	{Symbol: "AMZN", Name: "Amazon.com Inc", Type: "EQUITY", Region: "NMS", Currency: "USD"},
	{Symbol: "TCS.NS", Name: "Tata Consultancy Services", Type: "EQUITY", Region: "NSI", Currency: "INR",
		Description: "IT services and consulting"},
	{Symbol: "RELIANCE.NS", Name: "Reliance Industries", Type: "EQUITY", Region: "NSI", Currency: "INR"},
}

func TestSubstring_Scenario(t *testing.T) {
	cat := []core.SearchEntry{
		{Symbol: "AAPL", Name: "Apple Inc"},
		{Symbol: "AAPL.NS", Name: "Apple India"},
	}

	got := Substring("AAPL", cat)
	require.Len(t, got, 2)
	assert.Equal(t, "AAPL", got[0].Symbol)
	assert.Equal(t, "AAPL.NS", got[1].Symbol)
}

func TestSubstring_ShortQuery(t *testing.T) {
	for _, q := range []string{"", "a", " A ", "\t"} {
		got := Substring(q, catalog)
		assert.NotNil(t, got)
		assert.Emptyf(t, got, "query %q", q)
	}
}

func TestSubstring_MatchesNameCaseInsensitive(t *testing.T) {
	got := Substring("  micro ", catalog)
	require.Len(t, got, 1)
	assert.Equal(t, "MSFT", got[0].Symbol)

	got = Substring(".ns", catalog)
	require.Len(t, got, 2)
	assert.Equal(t, "TCS.NS", got[0].Symbol)
	assert.Equal(t, "RELIANCE.NS", got[1].Symbol)
}

func TestSubstring_Limit(t *testing.T) {
	var cat []core.SearchEntry
	for i := 0; i < 15; i++ {
		cat = append(cat, core.SearchEntry{Symbol: fmt.Sprintf("BANK%d", i), Name: "Bank"})
	}

	got := Substring("bank", cat)
	require.Len(t, got, SuggestionLimit)
	assert.Equal(t, "BANK0", got[0].Symbol)
	assert.Equal(t, "BANK9", got[9].Symbol)
}

func TestFuzzy_Typo(t *testing.T) {
	got := Fuzzy("microsft", catalog, DefaultOptions())
	require.NotEmpty(t, got)
	assert.Equal(t, "MSFT", got[0].Symbol)
	assert.Equal(t, "name", got[0].Field)
	assert.LessOrEqual(t, got[0].Score, 0.2)
}

func TestFuzzy_ExactSymbolScoresZero(t *testing.T) {
	got := Fuzzy("amzn", catalog, DefaultOptions())
	require.NotEmpty(t, got)
	assert.Equal(t, "AMZN", got[0].Symbol)
	assert.Zero(t, got[0].Score)
}

func TestFuzzy_Description(t *testing.T) {
	got := Fuzzy("consulting", catalog, DefaultOptions())
	require.NotEmpty(t, got)
	assert.Equal(t, "TCS.NS", got[0].Symbol)
}

func TestFuzzy_OrderedBestFirst(t *testing.T) {
	got := Fuzzy("apple", catalog, Options{Threshold: 1, MinMatchLength: 2})
	require.NotEmpty(t, got)
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].Score, got[i].Score)
	}
}

func TestFuzzy_TiesKeepCatalogOrder(t *testing.T) {
	cat := []core.SearchEntry{
		{Symbol: "AAPL", Name: "Apple Inc"},
		{Symbol: "AAPL.NS", Name: "Apple India"},
	}

	got := Fuzzy("apple", cat, DefaultOptions())
	require.Len(t, got, 2)
	assert.Equal(t, got[0].Score, got[1].Score)
	assert.Equal(t, "AAPL", got[0].Symbol)
	assert.Equal(t, "AAPL.NS", got[1].Symbol)
}

func TestFuzzy_Deterministic(t *testing.T) {
	opts := Options{Threshold: 0.6, MinMatchLength: 2}
	first := Fuzzy("tata", catalog, opts)
	second := Fuzzy("tata", catalog, opts)
	assert.Equal(t, first, second)
}

func TestFuzzy_Threshold(t *testing.T) {
	assert.Empty(t, Fuzzy("zzzzqqq", catalog, DefaultOptions()))

	strict := Fuzzy("microsft", catalog, Options{Threshold: 0.05, MinMatchLength: 2})
	assert.Empty(t, strict)
}

func TestFuzzy_MinMatchLength(t *testing.T) {
	assert.Empty(t, Fuzzy("a", catalog, DefaultOptions()))

	cat := []core.SearchEntry{{Symbol: "F"}}
	assert.Empty(t, Fuzzy("fx", cat, Options{Threshold: 1, MinMatchLength: 2}))
}

func TestFuzzy_Limit(t *testing.T) {
	got := Fuzzy("inc", catalog, Options{Threshold: 1, MinMatchLength: 2, Limit: 2})
	assert.Len(t, got, 2)
}

func TestFuzzy_EmptyInputs(t *testing.T) {
	assert.Empty(t, Fuzzy("", catalog, DefaultOptions()))
	assert.Empty(t, Fuzzy("apple", nil, DefaultOptions()))
}
