package aggregate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xxz807/cargofin/internal/finance/domain"
	"github.com/xxz807/cargofin/internal/finance/query"
)

var payableSchema = query.Schema[domain.Payable]{
	Search:   func(p domain.Payable) []string { return []string{p.Vendor} },
	Status:   func(p domain.Payable) string { return string(p.Status) },
	Category: func(p domain.Payable) string { return p.Category },
	Date:     func(p domain.Payable) time.Time { return p.DueDate },
	Bucket:   func(p domain.Payable) domain.AgingBucket { return p.Bucket },
	Amount:   func(p domain.Payable) decimal.Decimal { return p.Amount },
}

func payable(id, vendor, category string, amount int64, status domain.BalanceStatus, bucket domain.AgingBucket) domain.Payable {
	amt := decimal.NewFromInt(amount)
	return domain.Payable{
		OpenItem: domain.OpenItem{
			ID:        id,
			DueDate:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			Amount:    amt,
			AmountDue: amt,
			Status:    status,
			Bucket:    bucket,
		},
		Vendor:   vendor,
		Category: category,
	}
}

func fixtures() []domain.Payable {
	return []domain.Payable{
		payable("1", "Shell", "fuel", 300, domain.BalanceOverdue, domain.Bucket1To30),
		payable("2", "Indian Oil", "fuel", 150, domain.BalanceCurrent, domain.BucketCurrent),
		payable("3", "Tyre Co", "maintenance", 500, domain.BalancePartiallyPaid, domain.Bucket31To60),
		payable("4", "Shell", "fuel", 50, domain.BalanceOverdue, domain.Bucket90Plus),
	}
}

func TestAggregate(t *testing.T) {
	sum := Aggregate(fixtures(), payableSchema)

	assert.Equal(t, 4, sum.Count)
	assert.True(t, sum.TotalAmount.Equal(decimal.NewFromInt(1000)))
	assert.True(t, sum.ByStatus["overdue"].Equal(decimal.NewFromInt(350)))
	assert.True(t, sum.ByStatus["current"].Equal(decimal.NewFromInt(150)))
	assert.True(t, sum.ByStatus["partially_paid"].Equal(decimal.NewFromInt(500)))
	assert.Equal(t, map[string]int{"overdue": 2, "current": 1, "partially_paid": 1}, sum.Counts)
	assert.True(t, sum.ByCategory["fuel"].Equal(decimal.NewFromInt(500)))
	assert.True(t, sum.ByCategory["maintenance"].Equal(decimal.NewFromInt(500)))
}

func TestAggregate_MatchesFilteredTable(t *testing.T) {
	items := fixtures()
	filters := []query.Filter{
		{},
		{Search: "shell"},
		{Status: "overdue"},
		{Category: "fuel"},
		{Bucket: domain.Bucket31To60},
		{Search: "shell", Bucket: domain.Bucket90Plus},
		{Search: "nobody"},
	}

	for _, f := range filters {
		filtered := query.Select(items, payableSchema, f)
		sum := Aggregate(filtered, payableSchema)

		byStatus := decimal.Zero
		for _, v := range sum.ByStatus {
			byStatus = byStatus.Add(v)
		}
		table := Sum(filtered, payableSchema.Amount)

		assert.True(t, byStatus.Equal(table), "filter %+v", f)
		assert.True(t, sum.TotalAmount.Equal(table), "filter %+v", f)
		assert.Equal(t, len(filtered), sum.Count)
	}
}

func TestAggregate_Empty(t *testing.T) {
	sum := Aggregate([]domain.Payable{}, payableSchema)
	assert.Equal(t, 0, sum.Count)
	assert.True(t, sum.TotalAmount.IsZero())
	assert.NotNil(t, sum.ByStatus)
	assert.Empty(t, sum.ByStatus)
}

func TestByBucket(t *testing.T) {
	got := ByBucket(fixtures(), payableSchema, func(p domain.Payable) decimal.Decimal { return p.AmountDue })

	require.Len(t, got, 5)
	assert.True(t, got[domain.BucketCurrent].Equal(decimal.NewFromInt(150)))
	assert.True(t, got[domain.Bucket1To30].Equal(decimal.NewFromInt(300)))
	assert.True(t, got[domain.Bucket31To60].Equal(decimal.NewFromInt(500)))
	assert.True(t, got[domain.Bucket61To90].IsZero())
	assert.True(t, got[domain.Bucket90Plus].Equal(decimal.NewFromInt(50)))
}

func TestGrowthAndShare_GuardZero(t *testing.T) {
	d := decimal.NewFromInt

	pct, ok := GrowthPct(d(150), d(100))
	require.True(t, ok)
	assert.True(t, pct.Equal(d(50)))

	pct, ok = GrowthPct(d(50), d(100))
	require.True(t, ok)
	assert.True(t, pct.Equal(d(-50)))

	_, ok = GrowthPct(d(10), d(0))
	assert.False(t, ok)

	pct, ok = Share(d(25), d(200))
	require.True(t, ok)
	assert.True(t, pct.Equal(decimal.NewFromFloat(12.5)))

	_, ok = Share(d(0), d(0))
	assert.False(t, ok)
}

func TestMonthOverMonth(t *testing.T) {
	schema := query.Schema[domain.Invoice]{
		Date:   func(i domain.Invoice) time.Time { return i.IssueDate },
		Amount: func(i domain.Invoice) decimal.Decimal { return i.Amount },
	}
	at := func(m time.Month, d int, amt int64) domain.Invoice {
		return domain.Invoice{IssueDate: time.Date(2024, m, d, 10, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(amt)}
	}
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	g := MonthOverMonth([]domain.Invoice{at(1, 31, 999), at(2, 1, 100), at(2, 29, 100), at(3, 1, 300), at(3, 31, 0)}, schema, now)
	assert.True(t, g.Current.Equal(decimal.NewFromInt(300)))
	assert.True(t, g.Previous.Equal(decimal.NewFromInt(200)))
	require.NotNil(t, g.Pct)
	assert.True(t, g.Pct.Equal(decimal.NewFromInt(50)))

	g = MonthOverMonth([]domain.Invoice{at(3, 2, 10)}, schema, now)
	assert.Nil(t, g.Pct)
}
