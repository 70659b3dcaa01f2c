package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatusFor 发票状态机, 按优先级判断:
//  1. 已付 -> paid
//  2. 已取消 -> cancelled
//  3. 到期日早于 now -> overdue
//  4. 已送达 -> sent
//  5. 其余 -> draft
func InvoiceStatusFor(c PaymentClassification, l LifecycleStatus, dueDate, now time.Time) InvoiceStatus {
	switch {
	case c == Paid:
		return InvoicePaid
	case l == Cancelled:
		return InvoiceCancelled
	case dueDate.Before(now):
		return InvoiceOverdue
	case l == Delivered:
		return InvoiceSent
	default:
		return InvoiceDraft
	}
}

// BalanceStatusFor 应收/应付状态机
// 部分付款优先于逾期
func BalanceStatusFor(amountPaid, amountDue decimal.Decimal, daysOverdue int) BalanceStatus {
	switch {
	case amountPaid.IsPositive() && amountDue.IsPositive():
		return BalancePartiallyPaid
	case daysOverdue > 0:
		return BalanceOverdue
	default:
		return BalanceCurrent
	}
}
