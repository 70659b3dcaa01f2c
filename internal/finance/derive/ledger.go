package derive

import (
	"fmt"
	"slices"
	"time"

	"github.com/xxz807/cargofin/internal/finance/domain"
)

// Ledger 合并运单、收款、费用为一条按日期倒序的流水
// 同一日期保持输入顺序: 运单在前, 收款其次, 费用最后
func (d *Deriver) Ledger(records []domain.ShipmentRecord, expenses []domain.ExpenseRecord, now time.Time) ([]domain.LedgerEntry, []Diagnostic) {
	entries := make([]domain.LedgerEntry, 0, len(records)+len(expenses))
	diags := make([]Diagnostic, 0)

	var payments []domain.LedgerEntry
	for _, r := range records {
		inv, err := d.Invoice(r, now)
		if err != nil {
			diags = append(diags, diagnosticFrom("shipment", r.ID, err))
			continue
		}
		if inv == nil {
			continue
		}
		entries = append(entries, bookingEntry(r, inv.Status))

		// 运单已校验, 这里不会再出错
		if p, _ := d.Payment(r); p != nil {
			payments = append(payments, paymentEntry(*p))
		}
	}
	entries = append(entries, payments...)

	for _, e := range expenses {
		if err := validateExpense(e); err != nil {
			diags = append(diags, diagnosticFrom("expense", e.ID, err))
			continue
		}
		entries = append(entries, expenseEntry(e))
	}

	slices.SortStableFunc(entries, func(a, b domain.LedgerEntry) int {
		return b.Date.Compare(a.Date)
	})
	return entries, diags
}

func bookingEntry(r domain.ShipmentRecord, status domain.InvoiceStatus) domain.LedgerEntry {
	desc := fmt.Sprintf("Booking %s", r.ID)
	if r.Origin != "" && r.Destination != "" {
		desc = fmt.Sprintf("Booking %s: %s to %s", r.ID, r.Origin, r.Destination)
	}
	return domain.LedgerEntry{
		ID:              "ledger-booking-" + r.ID,
		Kind:            domain.LedgerBooking,
		Date:            r.CreatedAt,
		Description:     desc,
		CounterpartName: r.BilledParty(),
		Amount:          r.TotalAmount,
		Status:          string(status),
		Reference:       r.ID,
	}
}

func paymentEntry(p domain.Payment) domain.LedgerEntry {
	return domain.LedgerEntry{
		ID:              "ledger-payment-" + p.ShipmentID,
		Kind:            domain.LedgerPayment,
		Date:            p.Date,
		Description:     fmt.Sprintf("Payment via %s (%s)", p.Method, p.Reference),
		CounterpartName: p.Customer,
		Amount:          p.Amount,
		Status:          string(p.Status),
		Reference:       p.ShipmentID,
	}
}

func expenseEntry(e domain.ExpenseRecord) domain.LedgerEntry {
	desc := e.Description
	if desc == "" {
		desc = "Expense: " + e.Category
	}
	status := "unpaid"
	switch {
	case !e.AmountPaid.LessThan(e.Amount):
		status = "paid"
	case e.AmountPaid.IsPositive():
		status = string(domain.BalancePartiallyPaid)
	}
	return domain.LedgerEntry{
		ID:              "ledger-expense-" + e.ID,
		Kind:            domain.LedgerExpense,
		Date:            e.Date,
		Description:     desc,
		CounterpartName: e.Vendor,
		Amount:          e.Amount,
		Status:          status,
		Reference:       e.ID,
	}
}
