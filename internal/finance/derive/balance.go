package derive

import (
	"time"

	"github.com/xxz807/cargofin/internal/finance/domain"
)

// Receivable 到付且未取消的运单产生应收; 已结清返回 nil
func (d *Deriver) Receivable(r domain.ShipmentRecord, now time.Time) (*domain.Receivable, error) {
	if err := validateShipment(r); err != nil {
		return nil, err
	}
	if r.PaymentClassification != domain.ToPay || r.LifecycleStatus == domain.Cancelled {
		return nil, nil
	}

	item := openItem("receivable-"+r.ID, InvoiceNumber(r.ID), r.TotalAmount, settledAmount(r), d.dueDate(r.CreatedAt), now)
	if item == nil {
		return nil, nil
	}
	return &domain.Receivable{
		OpenItem:   *item,
		ShipmentID: r.ID,
		Customer:   r.ReceiverID,
	}, nil
}

// Receivables 批量派生
func (d *Deriver) Receivables(records []domain.ShipmentRecord, now time.Time) ([]domain.Receivable, []Diagnostic) {
	return collect(records, "shipment", shipmentID, func(r domain.ShipmentRecord) (*domain.Receivable, error) {
		return d.Receivable(r, now)
	})
}

// Payable 费用 -> 应付, 到期日 = 费用日期 + 账期
func (d *Deriver) Payable(e domain.ExpenseRecord, now time.Time) (*domain.Payable, error) {
	if err := validateExpense(e); err != nil {
		return nil, err
	}

	item := openItem("payable-"+e.ID, "BILL-"+e.ID, e.Amount, e.AmountPaid, d.dueDate(e.Date), now)
	if item == nil {
		return nil, nil
	}
	return &domain.Payable{
		OpenItem:  *item,
		ExpenseID: e.ID,
		Vendor:    e.Vendor,
		Category:  e.Category,
	}, nil
}

func (d *Deriver) Payables(expenses []domain.ExpenseRecord, now time.Time) ([]domain.Payable, []Diagnostic) {
	return collect(expenses, "expense", expenseID, func(e domain.ExpenseRecord) (*domain.Payable, error) {
		return d.Payable(e, now)
	})
}
