package derive

import (
	"github.com/xxz807/cargofin/internal/finance/domain"
)

// Payment 运单 -> 收款
// 已付运单一定有收款 (缺少收款信息时按运单总额、发运日期补齐);
// 到付运单只有送达且上游给出收款信息时才有收款
func (d *Deriver) Payment(r domain.ShipmentRecord) (*domain.Payment, error) {
	if err := validateShipment(r); err != nil {
		return nil, err
	}

	info := r.Payment
	switch r.PaymentClassification {
	case domain.Paid:
		if info == nil {
			info = &domain.PaymentRecord{Date: r.CreatedAt, Amount: r.TotalAmount}
		}
	case domain.ToPay:
		if r.LifecycleStatus != domain.Delivered || info == nil {
			return nil, nil
		}
	default:
		return nil, nil
	}

	p := &domain.Payment{
		ID:         "payment-" + r.ID,
		ShipmentID: r.ID,
		Date:       info.Date,
		Amount:     info.Amount,
		Method:     info.Method,
		Reference:  info.Reference,
		Status:     info.Status,
		InvoiceRef: InvoiceNumber(r.ID),
		Customer:   r.BilledParty(),
	}
	if p.Date.IsZero() {
		p.Date = r.CreatedAt
	}
	if p.Method == "" {
		p.Method = d.method
	}
	if p.Status == "" {
		p.Status = domain.PaymentCompleted
	}
	if p.Reference == "" {
		p.Reference = "REF-" + r.ID
	}
	return p, nil
}

// Payments 批量派生
func (d *Deriver) Payments(records []domain.ShipmentRecord) ([]domain.Payment, []Diagnostic) {
	return collect(records, "shipment", shipmentID, d.Payment)
}
