package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscountPct(t *testing.T) {
	d := decimal.NewFromInt

	pct, ok := DiscountPct(d(100), d(90))
	require.True(t, ok)
	assert.True(t, pct.Equal(d(10)), "got %s", pct)

	pct, ok = DiscountPct(d(100), d(110))
	require.True(t, ok)
	assert.True(t, pct.Equal(d(-10)), "got %s", pct)

	pct, ok = DiscountPct(d(100), d(100))
	require.True(t, ok)
	assert.True(t, pct.IsZero())

	assert.NotPanics(t, func() {
		pct, ok = DiscountPct(d(0), d(50))
	})
	assert.False(t, ok)
	assert.True(t, pct.IsZero())
}

func TestDiscountLabel(t *testing.T) {
	d := decimal.NewFromFloat

	assert.Equal(t, "10% discount", DiscountLabel(d(100), d(90)))
	assert.Equal(t, "10% markup", DiscountLabel(d(100), d(110)))
	assert.Equal(t, "33.33% discount", DiscountLabel(d(3), d(2)))
	assert.Equal(t, "No change", DiscountLabel(d(100), d(100)))
	assert.Equal(t, "No change", DiscountLabel(d(0), d(12.5)))
}

func TestNewRateView(t *testing.T) {
	article := Article{ID: "art-1", Name: "Cement bag", BaseRate: decimal.NewFromInt(50)}

	view := NewRateView(article, CustomerArticleRate{CustomerID: "c1", ArticleID: "art-1", Rate: decimal.NewFromInt(45)})
	require.NotNil(t, view.DiscountPct)
	assert.True(t, view.DiscountPct.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, "Cement bag", view.ArticleName)
	assert.Equal(t, "10% discount", view.Label)

	free := Article{ID: "art-2", Name: "Samples", BaseRate: decimal.Zero}
	view = NewRateView(free, CustomerArticleRate{CustomerID: "c1", ArticleID: "art-2", Rate: decimal.NewFromInt(5)})
	assert.Nil(t, view.DiscountPct)
	assert.Equal(t, "No change", view.Label)
}

func TestInvalidRecordError(t *testing.T) {
	err := NewInvalidRecordError("shipment", "s-1", "created_at", "is missing")

	assert.True(t, errors.Is(err, ErrInvalidRecord))
	assert.Equal(t, "shipment s-1: created_at is missing", err.Error())

	var target *InvalidRecordError
	require.True(t, errors.As(error(err), &target))
	assert.Equal(t, "created_at", target.Field)

	assert.Contains(t, NewInvalidRecordError("shipment", "", "id", "is missing").Error(), "<missing id>")
}
