package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// DiscountPct 协议价相对标准价的折扣百分比
// 正数为折扣, 负数为加价; 标准价为 0 时无意义, ok 返回 false
func DiscountPct(baseRate, overrideRate decimal.Decimal) (pct decimal.Decimal, ok bool) {
	if baseRate.IsZero() {
		return decimal.Zero, false
	}
	return baseRate.Sub(overrideRate).Div(baseRate).Mul(hundred), true
}

// DiscountLabel 展示用文案, 例如 "10% discount" / "5.5% markup" / "No change"
func DiscountLabel(baseRate, overrideRate decimal.Decimal) string {
	pct, ok := DiscountPct(baseRate, overrideRate)
	if !ok {
		return "No change"
	}
	pct = pct.Round(2)
	switch {
	case pct.IsPositive():
		return fmt.Sprintf("%s%% discount", pct.String())
	case pct.IsNegative():
		return fmt.Sprintf("%s%% markup", pct.Neg().String())
	default:
		return "No change"
	}
}

// NewRateView 组合标准运价与客户协议价
func NewRateView(article Article, rate CustomerArticleRate) RateView {
	view := RateView{
		CustomerID:  rate.CustomerID,
		ArticleID:   article.ID,
		ArticleName: article.Name,
		BaseRate:    article.BaseRate,
		Rate:        rate.Rate,
		Label:       DiscountLabel(article.BaseRate, rate.Rate),
	}
	if pct, ok := DiscountPct(article.BaseRate, rate.Rate); ok {
		view.DiscountPct = &pct
	}
	return view
}
