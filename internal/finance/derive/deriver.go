// Package derive 把运单/费用记录映射为派生财务实体
// 所有方法都是纯函数: 不修改输入, 不读系统时钟, 不做 I/O
package derive

import (
	"errors"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xxz807/cargofin/internal/finance/domain"
)

const (
	// DefaultPaymentTermDays 固定账期 (天)
	DefaultPaymentTermDays = 30
)

// Config 派生参数
type Config struct {
	PaymentTermDays int
	DefaultMethod   domain.PaymentMethod // 已付运单缺少收款信息时使用
}

// DefaultConfig 30 天账期, 默认现金收款
func DefaultConfig() Config {
	return Config{
		PaymentTermDays: DefaultPaymentTermDays,
		DefaultMethod:   domain.Cash,
	}
}

// Deriver 实体派生器, 创建后只读, 可并发使用
type Deriver struct {
	termDays int
	method   domain.PaymentMethod
}

// New 非法参数回退到默认值
func New(cfg Config) *Deriver {
	d := &Deriver{termDays: cfg.PaymentTermDays, method: cfg.DefaultMethod}
	if d.termDays <= 0 {
		d.termDays = DefaultPaymentTermDays
	}
	if !d.method.IsValid() {
		d.method = domain.Cash
	}
	return d
}

// PaymentTermDays 当前账期
func (d *Deriver) PaymentTermDays() int {
	return d.termDays
}

func (d *Deriver) dueDate(issued time.Time) time.Time {
	return issued.AddDate(0, 0, d.termDays)
}

// Diagnostic 一条被跳过记录的原因
type Diagnostic struct {
	Kind     string `json:"kind"`
	RecordID string `json:"record_id"`
	Field    string `json:"field,omitempty"`
	Reason   string `json:"reason"`
}

func diagnosticFrom(kind, id string, err error) Diagnostic {
	var invalid *domain.InvalidRecordError
	if errors.As(err, &invalid) {
		return Diagnostic{Kind: invalid.Kind, RecordID: invalid.RecordID, Field: invalid.Field, Reason: invalid.Reason}
	}
	return Diagnostic{Kind: kind, RecordID: id, Reason: err.Error()}
}

// collect 逐条派生, 坏记录转为诊断信息, 不中断整批
func collect[In, Out any](items []In, kind string, id func(In) string, fn func(In) (*Out, error)) ([]Out, []Diagnostic) {
	out := make([]Out, 0, len(items))
	diags := make([]Diagnostic, 0)
	for _, item := range items {
		entity, err := fn(item)
		if err != nil {
			diags = append(diags, diagnosticFrom(kind, id(item), err))
			continue
		}
		if entity != nil {
			out = append(out, *entity)
		}
	}
	return out, diags
}

func shipmentID(r domain.ShipmentRecord) string { return r.ID }
func expenseID(r domain.ExpenseRecord) string   { return r.ID }

// validateShipment 校验运单结构
func validateShipment(r domain.ShipmentRecord) error {
	invalid := func(field, reason string) error {
		return domain.NewInvalidRecordError("shipment", r.ID, field, reason)
	}
	switch {
	case r.ID == "":
		return invalid("id", "is missing")
	case r.CreatedAt.IsZero():
		return invalid("created_at", "is missing")
	case r.TotalAmount.IsNegative():
		return invalid("total_amount", "must not be negative")
	case !r.PaymentClassification.IsValid():
		return invalid("payment_classification", "unknown value "+strconv.Quote(string(r.PaymentClassification)))
	case !r.LifecycleStatus.IsValid():
		return invalid("lifecycle_status", "unknown value "+strconv.Quote(string(r.LifecycleStatus)))
	}

	p := r.Payment
	if p == nil {
		return nil
	}
	switch {
	case p.Amount.IsNegative():
		return invalid("payment.amount", "must not be negative")
	case p.Amount.GreaterThan(r.TotalAmount):
		return invalid("payment.amount", "exceeds total_amount")
	case p.Method != "" && !p.Method.IsValid():
		return invalid("payment.method", "unknown value "+strconv.Quote(string(p.Method)))
	case p.Status != "" && !p.Status.IsValid():
		return invalid("payment.status", "unknown value "+strconv.Quote(string(p.Status)))
	case r.PaymentClassification == domain.ToPay && p.Date.Before(r.CreatedAt):
		// 到付只能在发运之后收款
		return invalid("payment.date", "is before created_at")
	}
	return nil
}

func validateExpense(e domain.ExpenseRecord) error {
	invalid := func(field, reason string) error {
		return domain.NewInvalidRecordError("expense", e.ID, field, reason)
	}
	switch {
	case e.ID == "":
		return invalid("id", "is missing")
	case e.Date.IsZero():
		return invalid("date", "is missing")
	case e.Amount.IsNegative():
		return invalid("amount", "must not be negative")
	case e.AmountPaid.IsNegative():
		return invalid("amount_paid", "must not be negative")
	case e.AmountPaid.GreaterThan(e.Amount):
		return invalid("amount_paid", "exceeds amount")
	}
	return nil
}

// settledAmount 运单已收金额, 只有 completed 的收款计入
// 到付运单送达前的收款不计入, 与 Payment 的收款条件一致
func settledAmount(r domain.ShipmentRecord) decimal.Decimal {
	if r.Payment == nil {
		return decimal.Zero
	}
	if r.PaymentClassification == domain.ToPay && r.LifecycleStatus != domain.Delivered {
		return decimal.Zero
	}
	if r.Payment.Status != "" && r.Payment.Status != domain.PaymentCompleted {
		return decimal.Zero
	}
	return r.Payment.Amount
}

// openItem 计算未结余额; 已结清返回 nil
func openItem(id, number string, amount, paid decimal.Decimal, due, now time.Time) *domain.OpenItem {
	amountDue := amount.Sub(paid)
	if !amountDue.IsPositive() {
		return nil
	}
	aging := domain.Classify(due, now)
	return &domain.OpenItem{
		ID:            id,
		InvoiceNumber: number,
		DueDate:       due,
		Amount:        amount,
		AmountPaid:    paid,
		AmountDue:     amountDue,
		Status:        domain.BalanceStatusFor(paid, amountDue, aging.DaysOverdue),
		DaysOverdue:   aging.DaysOverdue,
		Bucket:        aging.Bucket,
	}
}
