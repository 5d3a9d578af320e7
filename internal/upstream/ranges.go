package upstream

import "strings"

// ChartRange pairs a display label with the provider range and bar interval.
type ChartRange struct {
	Label    string `json:"label"`
	Range    string `json:"range"`
	Interval string `json:"interval"`
}

// Ranges lists the chart ranges offered to the view layer, shortest first.
var Ranges = []ChartRange{
	{Label: "1D", Range: "1d", Interval: "5m"},
	{Label: "5D", Range: "5d", Interval: "15m"},
	{Label: "1M", Range: "1mo", Interval: "1d"},
	{Label: "6M", Range: "6mo", Interval: "1d"},
	{Label: "YTD", Range: "ytd", Interval: "1d"},
	{Label: "1Y", Range: "1y", Interval: "1wk"},
	{Label: "5Y", Range: "5y", Interval: "1mo"},
	{Label: "All", Range: "max", Interval: "1mo"},
}

// LookupRange finds a range by label or provider range, case-insensitively.
// Unknown values fall back to the intraday 1D range.
func LookupRange(v string) ChartRange {
	for _, r := range Ranges {
		if strings.EqualFold(r.Label, v) || strings.EqualFold(r.Range, v) {
			return r
		}
	}
	return Ranges[0]
}
