package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xxz807/cargofin/internal/finance/aggregate"
	"github.com/xxz807/cargofin/internal/finance/derive"
	"github.com/xxz807/cargofin/internal/finance/domain"
	"github.com/xxz807/cargofin/internal/finance/query"
)

// BalanceStats 应收/应付概览
type BalanceStats struct {
	Count       int                                    `json:"count"`
	Outstanding decimal.Decimal                        `json:"outstanding"`
	Overdue     decimal.Decimal                        `json:"overdue"`
	Aging       map[domain.AgingBucket]decimal.Decimal `json:"aging"`
}

// Dashboard 首页统计
type Dashboard struct {
	AsOf              time.Time           `json:"as_of"`
	Revenue           aggregate.Growth    `json:"revenue"` // 本月 vs 上月开票额 (不含已取消)
	Invoices          aggregate.Summary   `json:"invoices"`
	Receivables       BalanceStats        `json:"receivables"`
	Payables          BalanceStats        `json:"payables"`
	Collected         decimal.Decimal     `json:"collected"`
	CollectionRatePct *decimal.Decimal    `json:"collection_rate_pct"` // 开票额为 0 时为 null
	Diagnostics       []derive.Diagnostic `json:"diagnostics"`
}

// Dashboard 以 now 为准计算全部统计
func (s *FinanceService) Dashboard(ctx context.Context, now time.Time) (*Dashboard, error) {
	records, err := s.shipments.ListShipments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	expenses, err := s.expenses.ListExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	if now.IsZero() {
		now = s.clock()
	}

	// 运单只报告一次诊断, 发票派生已覆盖全部运单校验
	invoices, diags := s.deriver.Invoices(records, now)
	receivables, _ := s.deriver.Receivables(records, now)
	payments, _ := s.deriver.Payments(records)
	payables, expenseDiags := s.deriver.Payables(expenses, now)
	diags = append(diags, expenseDiags...)
	s.report("dashboard", diags)

	billed := dropCancelled(invoices)

	completed := query.Select(payments, PaymentSchema, query.Filter{Status: string(domain.PaymentCompleted)})

	d := &Dashboard{
		AsOf:        now,
		Revenue:     aggregate.MonthOverMonth(billed, InvoiceSchema, now),
		Invoices:    aggregate.Aggregate(invoices, InvoiceSchema),
		Receivables: balanceStats(receivables, ReceivableSchema, func(r domain.Receivable) domain.OpenItem { return r.OpenItem }),
		Payables:    balanceStats(payables, PayableSchema, func(p domain.Payable) domain.OpenItem { return p.OpenItem }),
		Collected:   aggregate.Sum(completed, PaymentSchema.Amount),
		Diagnostics: diags,
	}
	if pct, ok := aggregate.Share(d.Collected, aggregate.Sum(billed, InvoiceSchema.Amount)); ok {
		pct = pct.Round(2)
		d.CollectionRatePct = &pct
	}
	return d, nil
}

func dropCancelled(items []domain.Invoice) []domain.Invoice {
	out := make([]domain.Invoice, 0, len(items))
	for _, i := range items {
		if i.Status != domain.InvoiceCancelled {
			out = append(out, i)
		}
	}
	return out
}

func balanceStats[T any](items []T, schema query.Schema[T], item func(T) domain.OpenItem) BalanceStats {
	due := func(v T) decimal.Decimal { return item(v).AmountDue }
	overdue := make([]T, 0)
	for _, v := range items {
		if item(v).DaysOverdue > 0 {
			overdue = append(overdue, v)
		}
	}
	return BalanceStats{
		Count:       len(items),
		Outstanding: aggregate.Sum(items, due),
		Overdue:     aggregate.Sum(overdue, due),
		Aging:       aggregate.ByBucket(items, schema, due),
	}
}
