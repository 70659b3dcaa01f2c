// Package aggregate 汇总统计
// 必须作用于调用方正在查看的过滤结果, 保证汇总与表格一致
package aggregate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xxz807/cargofin/internal/finance/domain"
	"github.com/xxz807/cargofin/internal/finance/query"
)

var hundred = decimal.NewFromInt(100)

// Summary 汇总结果
type Summary struct {
	Count       int                        `json:"count"`
	TotalAmount decimal.Decimal            `json:"total_amount"`
	ByStatus    map[string]decimal.Decimal `json:"by_status"`
	ByCategory  map[string]decimal.Decimal `json:"by_category,omitempty"`
	Counts      map[string]int             `json:"counts"`
}

// Aggregate 按状态/分类求和计数
func Aggregate[T any](items []T, s query.Schema[T]) Summary {
	sum := Summary{
		TotalAmount: decimal.Zero,
		ByStatus:    map[string]decimal.Decimal{},
		Counts:      map[string]int{},
	}
	if s.Category != nil {
		sum.ByCategory = map[string]decimal.Decimal{}
	}

	for _, item := range items {
		amt := s.Amount(item)
		sum.Count++
		sum.TotalAmount = sum.TotalAmount.Add(amt)

		status := ""
		if s.Status != nil {
			status = s.Status(item)
		}
		sum.ByStatus[status] = sum.ByStatus[status].Add(amt)
		sum.Counts[status]++

		if s.Category != nil {
			cat := s.Category(item)
			sum.ByCategory[cat] = sum.ByCategory[cat].Add(amt)
		}
	}
	return sum
}

// ByBucket 按账龄区间求和, 所有区间都会出现 (可能为 0)
func ByBucket[T any](items []T, s query.Schema[T], amount func(T) decimal.Decimal) map[domain.AgingBucket]decimal.Decimal {
	out := make(map[domain.AgingBucket]decimal.Decimal, len(domain.AgingBuckets))
	for _, b := range domain.AgingBuckets {
		out[b] = decimal.Zero
	}
	if s.Bucket == nil {
		return out
	}
	for _, item := range items {
		b := s.Bucket(item)
		out[b] = out[b].Add(amount(item))
	}
	return out
}

// Sum 对任意金额字段求和
func Sum[T any](items []T, amount func(T) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(amount(item))
	}
	return total
}

// GrowthPct (current - previous) / previous × 100; previous 为 0 时无意义
func GrowthPct(current, previous decimal.Decimal) (decimal.Decimal, bool) {
	if previous.IsZero() {
		return decimal.Zero, false
	}
	return current.Sub(previous).Div(previous).Mul(hundred), true
}

// Share part 占 total 的百分比; total 为 0 时无意义
func Share(part, total decimal.Decimal) (decimal.Decimal, bool) {
	if total.IsZero() {
		return decimal.Zero, false
	}
	return part.Div(total).Mul(hundred), true
}

// Growth 本月与上月对比
type Growth struct {
	Current  decimal.Decimal  `json:"current"`
	Previous decimal.Decimal  `json:"previous"`
	Pct      *decimal.Decimal `json:"pct"` // 上月为 0 时为 null
}

// MonthOverMonth 以 now 所在自然月为本月 (按 now 的时区)
func MonthOverMonth[T any](items []T, s query.Schema[T], now time.Time) Growth {
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonth := thisMonth.AddDate(0, -1, 0)
	nextMonth := thisMonth.AddDate(0, 1, 0)

	g := Growth{Current: decimal.Zero, Previous: decimal.Zero}
	for _, item := range items {
		d := s.Date(item)
		switch {
		case !d.Before(thisMonth) && d.Before(nextMonth):
			g.Current = g.Current.Add(s.Amount(item))
		case !d.Before(lastMonth) && d.Before(thisMonth):
			g.Previous = g.Previous.Add(s.Amount(item))
		}
	}
	if pct, ok := GrowthPct(g.Current, g.Previous); ok {
		pct = pct.Round(2)
		g.Pct = &pct
	}
	return g
}
