package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// 以下实体均由运单/费用实时派生, 每次查询重新计算, 不落库

// Invoice 派生发票
type Invoice struct {
	ID            string                `json:"id"`
	InvoiceNumber string                `json:"invoice_number"`
	ShipmentID    string                `json:"shipment_id"`
	Customer      string                `json:"customer"`
	Billing       PaymentClassification `json:"billing"`
	IssueDate     time.Time             `json:"issue_date"`
	DueDate       time.Time             `json:"due_date"`
	Amount        decimal.Decimal       `json:"amount"` // 以运单总额为准
	Status        InvoiceStatus         `json:"status"`
	DaysOverdue   int                   `json:"days_overdue"`
	Bucket        AgingBucket           `json:"bucket"`
	LineItems     []LineItem            `json:"line_items"` // 仅作展示, 合计不一定等于 Amount
}

// LineItem 发票明细行, Amount = Quantity × Rate
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// OpenItem 未结余额的公共部分
// 约束: AmountDue = Amount - AmountPaid, 0 <= AmountPaid <= Amount
type OpenItem struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	DueDate       time.Time       `json:"due_date"`
	Amount        decimal.Decimal `json:"amount"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	AmountDue     decimal.Decimal `json:"amount_due"`
	Status        BalanceStatus   `json:"status"`
	DaysOverdue   int             `json:"days_overdue"`
	Bucket        AgingBucket     `json:"bucket"`
}

// Receivable 应收 (客户欠公司)
type Receivable struct {
	OpenItem
	ShipmentID string `json:"shipment_id"`
	Customer   string `json:"customer"`
}

// Payable 应付 (公司欠供应商)
type Payable struct {
	OpenItem
	ExpenseID string `json:"expense_id"`
	Vendor    string `json:"vendor"`
	Category  string `json:"category"`
}

// Payment 派生收款
type Payment struct {
	ID         string          `json:"id"`
	ShipmentID string          `json:"shipment_id"`
	Date       time.Time       `json:"date"`
	Amount     decimal.Decimal `json:"amount"`
	Method     PaymentMethod   `json:"method"`
	Reference  string          `json:"reference"`
	Status     PaymentStatus   `json:"status"`
	InvoiceRef string          `json:"invoice_ref,omitempty"`
	Customer   string          `json:"customer,omitempty"`
}

// LedgerEntry 合并流水视图中的一行
type LedgerEntry struct {
	ID              string          `json:"id"`
	Kind            LedgerKind      `json:"kind"`
	Date            time.Time       `json:"date"`
	Description     string          `json:"description"`
	CounterpartName string          `json:"counterpart_name"`
	Amount          decimal.Decimal `json:"amount"`
	Status          string          `json:"status"`
	Reference       string          `json:"reference"` // 源运单/费用 ID
}

// RateView 客户协议价与标准价的对比
type RateView struct {
	CustomerID  string           `json:"customer_id"`
	ArticleID   string           `json:"article_id"`
	ArticleName string           `json:"article_name"`
	BaseRate    decimal.Decimal  `json:"base_rate"`
	Rate        decimal.Decimal  `json:"rate"`
	DiscountPct *decimal.Decimal `json:"discount_pct"` // 标准价为 0 时为 null
	Label       string           `json:"label"`
}
