package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xxz807/cargofin/internal/finance/domain"
	"github.com/xxz807/cargofin/internal/finance/query"
)

// 各视图的搜索字段、过滤维度与排序字段

var InvoiceSchema = query.Schema[domain.Invoice]{
	Search: func(i domain.Invoice) []string {
		return []string{i.InvoiceNumber, i.ShipmentID, i.Customer}
	},
	Status:   func(i domain.Invoice) string { return string(i.Status) },
	Category: func(i domain.Invoice) string { return string(i.Billing) },
	Date:     func(i domain.Invoice) time.Time { return i.IssueDate },
	Bucket:   func(i domain.Invoice) domain.AgingBucket { return i.Bucket },
	Amount:   func(i domain.Invoice) decimal.Decimal { return i.Amount },
	Sorts: map[string]query.SortKey[domain.Invoice]{
		"invoice_number": query.ByText(func(i domain.Invoice) string { return i.InvoiceNumber }),
		"customer":       query.ByText(func(i domain.Invoice) string { return i.Customer }),
		"issue_date":     query.ByDate(func(i domain.Invoice) time.Time { return i.IssueDate }),
		"due_date":       query.ByDate(func(i domain.Invoice) time.Time { return i.DueDate }),
		"amount":         query.ByNumber(func(i domain.Invoice) decimal.Decimal { return i.Amount }),
		"status":         query.ByText(func(i domain.Invoice) string { return string(i.Status) }),
	},
}

var ReceivableSchema = query.Schema[domain.Receivable]{
	Search: func(r domain.Receivable) []string {
		return []string{r.InvoiceNumber, r.ShipmentID, r.Customer}
	},
	Status: func(r domain.Receivable) string { return string(r.Status) },
	Date:   func(r domain.Receivable) time.Time { return r.DueDate },
	Bucket: func(r domain.Receivable) domain.AgingBucket { return r.Bucket },
	Amount: func(r domain.Receivable) decimal.Decimal { return r.Amount },
	Sorts:  openItemSorts(func(r domain.Receivable) domain.OpenItem { return r.OpenItem }, func(r domain.Receivable) string { return r.Customer }),
}

var PayableSchema = query.Schema[domain.Payable]{
	Search: func(p domain.Payable) []string {
		return []string{p.InvoiceNumber, p.Vendor, p.Category}
	},
	Status:   func(p domain.Payable) string { return string(p.Status) },
	Category: func(p domain.Payable) string { return p.Category },
	Date:     func(p domain.Payable) time.Time { return p.DueDate },
	Bucket:   func(p domain.Payable) domain.AgingBucket { return p.Bucket },
	Amount:   func(p domain.Payable) decimal.Decimal { return p.Amount },
	Sorts:    openItemSorts(func(p domain.Payable) domain.OpenItem { return p.OpenItem }, func(p domain.Payable) string { return p.Vendor }),
}

var PaymentSchema = query.Schema[domain.Payment]{
	Search: func(p domain.Payment) []string {
		return []string{p.Reference, p.InvoiceRef, p.Customer, p.ShipmentID}
	},
	Status:   func(p domain.Payment) string { return string(p.Status) },
	Category: func(p domain.Payment) string { return string(p.Method) },
	Date:     func(p domain.Payment) time.Time { return p.Date },
	Amount:   func(p domain.Payment) decimal.Decimal { return p.Amount },
	Sorts: map[string]query.SortKey[domain.Payment]{
		"date":      query.ByDate(func(p domain.Payment) time.Time { return p.Date }),
		"amount":    query.ByNumber(func(p domain.Payment) decimal.Decimal { return p.Amount }),
		"customer":  query.ByText(func(p domain.Payment) string { return p.Customer }),
		"method":    query.ByText(func(p domain.Payment) string { return string(p.Method) }),
		"reference": query.ByText(func(p domain.Payment) string { return p.Reference }),
	},
}

var LedgerSchema = query.Schema[domain.LedgerEntry]{
	Search: func(e domain.LedgerEntry) []string {
		return []string{e.Description, e.CounterpartName, e.Reference}
	},
	Status:   func(e domain.LedgerEntry) string { return e.Status },
	Category: func(e domain.LedgerEntry) string { return string(e.Kind) },
	Date:     func(e domain.LedgerEntry) time.Time { return e.Date },
	Amount:   func(e domain.LedgerEntry) decimal.Decimal { return e.Amount },
	Sorts: map[string]query.SortKey[domain.LedgerEntry]{
		"date":        query.ByDate(func(e domain.LedgerEntry) time.Time { return e.Date }),
		"amount":      query.ByNumber(func(e domain.LedgerEntry) decimal.Decimal { return e.Amount }),
		"counterpart": query.ByText(func(e domain.LedgerEntry) string { return e.CounterpartName }),
		"kind":        query.ByText(func(e domain.LedgerEntry) string { return string(e.Kind) }),
	},
}

// openItemSorts 应收/应付共用的排序字段
func openItemSorts[T any](item func(T) domain.OpenItem, party func(T) string) map[string]query.SortKey[T] {
	return map[string]query.SortKey[T]{
		"invoice_number": query.ByText(func(v T) string { return item(v).InvoiceNumber }),
		"party":          query.ByText(party),
		"due_date":       query.ByDate(func(v T) time.Time { return item(v).DueDate }),
		"amount":         query.ByNumber(func(v T) decimal.Decimal { return item(v).Amount }),
		"amount_due":     query.ByNumber(func(v T) decimal.Decimal { return item(v).AmountDue }),
		"days_overdue":   query.ByInt(func(v T) int { return item(v).DaysOverdue }),
	}
}
