package quote

import (
	"testing"
	"time"

	"github.com/newthinker/stockdeck/internal/core"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStats(t *testing.T) {
	base := time.Unix(1700000000, 0)
	closes := []float64{100, 104, 98, 102}

	s := core.Series{Symbol: "AAPL"}
	for i, c := range closes {
		s.Bars = append(s.Bars, core.Bar{
			Time:  base.Add(time.Duration(i) * 5 * time.Minute),
			Close: decimal.NewFromFloat(c),
		})
	}

	st := Stats(s)
	assert.True(t, st.First.Equal(decimal.NewFromInt(100)))
	assert.True(t, st.Last.Equal(decimal.NewFromInt(102)))
	assert.True(t, st.Change.Equal(decimal.NewFromInt(2)))
	assert.True(t, st.ChangePercent.Equal(decimal.NewFromInt(2)))
	assert.True(t, st.High.Equal(decimal.NewFromInt(104)))
	assert.True(t, st.Low.Equal(decimal.NewFromInt(98)))
	assert.True(t, st.Average.Equal(decimal.NewFromInt(101)))
}

func TestStats_Empty(t *testing.T) {
	st := Stats(core.Series{})
	assert.True(t, st.Last.IsZero())
	assert.True(t, st.ChangePercent.IsZero())
}
