// Package query 通用的过滤 -> 排序 -> 分页管道
// 所有参数显式传入, 不持有任何视图状态
package query

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/xxz807/cargofin/internal/finance/domain"
)

// DefaultPageSize 未指定页大小时使用
const DefaultPageSize = 10

// ErrInvalidSort 排序字段不存在
var ErrInvalidSort = errors.New("invalid sort field")

// Direction 排序方向
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sort 排序规格, Field 为空表示保持输入顺序
type Sort struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

// Filter 各条件之间为 AND, 零值条件不生效
type Filter struct {
	Search   string             `json:"search,omitempty"`
	Status   string             `json:"status,omitempty"`
	Category string             `json:"category,omitempty"`
	From     *time.Time         `json:"from,omitempty"` // 含
	To       *time.Time         `json:"to,omitempty"`   // 含
	Bucket   domain.AgingBucket `json:"bucket,omitempty"`
}

// Query 一次查询的全部参数
type Query struct {
	Filter   Filter `json:"filter"`
	Sort     Sort   `json:"sort"`
	Page     int    `json:"page"`      // 从 1 开始
	PageSize int    `json:"page_size"` // <= 0 使用视图默认值
}

// Page 分页结果
type Page[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
}

// Schema 描述某类实体如何被搜索、过滤、排序、汇总
type Schema[T any] struct {
	Search   func(T) []string // 参与全文搜索的字段
	Status   func(T) string
	Category func(T) string             // nil 表示该类实体没有分类
	Date     func(T) time.Time          // 日期窗口使用的主日期
	Bucket   func(T) domain.AgingBucket // nil 表示该类实体没有账龄
	Amount   func(T) decimal.Decimal
	Sorts    map[string]SortKey[T]
}

// HasSort 是否支持该排序字段
func (s Schema[T]) HasSort(field string) bool {
	_, ok := s.Sorts[field]
	return ok
}

// Apply 过滤 -> 排序 -> 分页, 不修改输入
func Apply[T any](items []T, s Schema[T], q Query) Page[T] {
	matched := Select(items, s, q.Filter)
	Order(matched, s, q.Sort)
	return Paginate(matched, q.Page, q.PageSize)
}

// Select 返回满足过滤条件的新切片
func Select[T any](items []T, s Schema[T], f Filter) []T {
	m := newMatcher(s, f)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if m.match(item) {
			out = append(out, item)
		}
	}
	return out
}

// Order 原地稳定排序; 未知字段保持原顺序
func Order[T any](items []T, s Schema[T], by Sort) {
	key, ok := s.Sorts[by.Field]
	if !ok {
		return
	}
	// Collator 非并发安全, 每次调用单独创建
	c := collate.New(language.English, collate.IgnoreCase)
	slices.SortStableFunc(items, func(a, b T) int {
		r := key.compare(c, a, b)
		if by.Direction == Desc {
			r = -r
		}
		return r
	})
}

// Paginate 页码超出范围时返回空页而不是错误
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page <= 0 {
		page = 1
	}

	total := len(items)
	p := Page[T]{
		Items:      []T{},
		TotalCount: total,
		TotalPages: total / pageSize,
		Page:       page,
		PageSize:   pageSize,
	}
	// 向上取整, pageSize 接近 MaxInt 时不能先相加
	if total%pageSize != 0 {
		p.TotalPages++
	}
	if page > p.TotalPages {
		return p
	}
	start := (page - 1) * pageSize
	end := start + min(pageSize, total-start)
	p.Items = append(p.Items, items[start:end]...)
	return p
}

type matcher[T any] struct {
	s      Schema[T]
	f      Filter
	needle string
	fold   cases.Caser
}

func newMatcher[T any](s Schema[T], f Filter) *matcher[T] {
	m := &matcher[T]{s: s, f: f, fold: cases.Fold()}
	m.needle = m.fold.String(strings.TrimSpace(f.Search))
	return m
}

func (m *matcher[T]) match(item T) bool {
	f := m.f
	if m.needle != "" && !m.matchSearch(item) {
		return false
	}
	if f.Status != "" && (m.s.Status == nil || m.s.Status(item) != f.Status) {
		return false
	}
	if f.Category != "" && (m.s.Category == nil || m.s.Category(item) != f.Category) {
		return false
	}
	if f.Bucket != "" && (m.s.Bucket == nil || m.s.Bucket(item) != f.Bucket) {
		return false
	}
	if f.From != nil || f.To != nil {
		if m.s.Date == nil {
			return false
		}
		d := m.s.Date(item)
		if f.From != nil && d.Before(*f.From) {
			return false
		}
		if f.To != nil && d.After(*f.To) {
			return false
		}
	}
	return true
}

func (m *matcher[T]) matchSearch(item T) bool {
	if m.s.Search == nil {
		return false
	}
	for _, field := range m.s.Search(item) {
		if strings.Contains(m.fold.String(field), m.needle) {
			return true
		}
	}
	return false
}
