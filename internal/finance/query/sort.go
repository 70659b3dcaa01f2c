package query

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
)

// SortKey 某个排序字段的比较方式
type SortKey[T any] struct {
	text   func(T) string
	number func(T) decimal.Decimal
	date   func(T) time.Time
}

// ByText 字符串按语言规则比较 (忽略大小写)
func ByText[T any](f func(T) string) SortKey[T] {
	return SortKey[T]{text: f}
}

// ByNumber 金额等数值比较
func ByNumber[T any](f func(T) decimal.Decimal) SortKey[T] {
	return SortKey[T]{number: f}
}

// ByInt 整数字段, 例如逾期天数
func ByInt[T any](f func(T) int) SortKey[T] {
	return SortKey[T]{number: func(v T) decimal.Decimal { return decimal.NewFromInt(int64(f(v))) }}
}

// ByDate 时间先后比较
func ByDate[T any](f func(T) time.Time) SortKey[T] {
	return SortKey[T]{date: f}
}

func (k SortKey[T]) compare(c *collate.Collator, a, b T) int {
	switch {
	case k.text != nil:
		return c.CompareString(k.text(a), k.text(b))
	case k.number != nil:
		return k.number(a).Cmp(k.number(b))
	case k.date != nil:
		return k.date(a).Compare(k.date(b))
	}
	return 0
}
