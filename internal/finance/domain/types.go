package domain

// PaymentClassification 运单付款方式
type PaymentClassification string

const (
	Paid      PaymentClassification = "Paid"      // 寄件方已付
	ToPay     PaymentClassification = "ToPay"     // 到付 (收件方付款)
	Quotation PaymentClassification = "Quotation" // 报价单, 不产生任何财务实体
)

// IsValid 校验付款方式合法性
func (c PaymentClassification) IsValid() bool {
	switch c {
	case Paid, ToPay, Quotation:
		return true
	}
	return false
}

// LifecycleStatus 运单生命周期
type LifecycleStatus string

const (
	Pending   LifecycleStatus = "pending"
	InTransit LifecycleStatus = "in_transit"
	Delivered LifecycleStatus = "delivered"
	Cancelled LifecycleStatus = "cancelled"
)

func (s LifecycleStatus) IsValid() bool {
	switch s {
	case Pending, InTransit, Delivered, Cancelled:
		return true
	}
	return false
}

// InvoiceStatus 发票状态 (派生, 不落库)
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "draft"
	InvoiceSent      InvoiceStatus = "sent"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceOverdue   InvoiceStatus = "overdue"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceDraft, InvoiceSent, InvoicePaid, InvoiceOverdue, InvoiceCancelled:
		return true
	}
	return false
}

// BalanceStatus 应收/应付未结余额状态
type BalanceStatus string

const (
	BalanceCurrent       BalanceStatus = "current"
	BalanceOverdue       BalanceStatus = "overdue"
	BalancePartiallyPaid BalanceStatus = "partially_paid"
)

func (s BalanceStatus) IsValid() bool {
	switch s {
	case BalanceCurrent, BalanceOverdue, BalancePartiallyPaid:
		return true
	}
	return false
}

// PaymentStatus 收款状态
type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
	PaymentPending   PaymentStatus = "pending"
	PaymentFailed    PaymentStatus = "failed"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentCompleted, PaymentPending, PaymentFailed:
		return true
	}
	return false
}

// PaymentMethod 收款方式
type PaymentMethod string

const (
	Cash         PaymentMethod = "Cash"
	BankTransfer PaymentMethod = "BankTransfer"
	UPI          PaymentMethod = "UPI"
	Cheque       PaymentMethod = "Cheque"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case Cash, BankTransfer, UPI, Cheque:
		return true
	}
	return false
}

// AgingBucket 账龄区间
type AgingBucket string

const (
	BucketCurrent AgingBucket = "current"
	Bucket1To30   AgingBucket = "1-30"
	Bucket31To60  AgingBucket = "31-60"
	Bucket61To90  AgingBucket = "61-90"
	Bucket90Plus  AgingBucket = "90+"
)

// AgingBuckets 按账龄从新到旧排列
var AgingBuckets = []AgingBucket{BucketCurrent, Bucket1To30, Bucket31To60, Bucket61To90, Bucket90Plus}

func (b AgingBucket) IsValid() bool {
	switch b {
	case BucketCurrent, Bucket1To30, Bucket31To60, Bucket61To90, Bucket90Plus:
		return true
	}
	return false
}

// LedgerKind 流水类型
type LedgerKind string

const (
	LedgerBooking LedgerKind = "booking"
	LedgerPayment LedgerKind = "payment"
	LedgerExpense LedgerKind = "expense"
)

func (k LedgerKind) IsValid() bool {
	switch k {
	case LedgerBooking, LedgerPayment, LedgerExpense:
		return true
	}
	return false
}
