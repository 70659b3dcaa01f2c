package derive

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xxz807/cargofin/internal/finance/domain"
)

// InvoiceID 由运单 ID 确定, 多次派生保持稳定
func InvoiceID(shipmentID string) string {
	return "invoice-" + shipmentID
}

// InvoiceNumber 展示用发票号
func InvoiceNumber(shipmentID string) string {
	return "INV-" + shipmentID
}

// Invoice 运单 -> 发票; 报价单返回 nil, nil
func (d *Deriver) Invoice(r domain.ShipmentRecord, now time.Time) (*domain.Invoice, error) {
	if err := validateShipment(r); err != nil {
		return nil, err
	}
	if r.PaymentClassification == domain.Quotation {
		return nil, nil
	}

	due := d.dueDate(r.CreatedAt)
	status := domain.InvoiceStatusFor(r.PaymentClassification, r.LifecycleStatus, due, now)

	// 已付和已取消的发票不再计算账龄
	aging := domain.Aging{Bucket: domain.BucketCurrent}
	if status != domain.InvoicePaid && status != domain.InvoiceCancelled {
		aging = domain.Classify(due, now)
	}

	return &domain.Invoice{
		ID:            InvoiceID(r.ID),
		InvoiceNumber: InvoiceNumber(r.ID),
		ShipmentID:    r.ID,
		Customer:      r.BilledParty(),
		Billing:       r.PaymentClassification,
		IssueDate:     r.CreatedAt,
		DueDate:       due,
		Amount:        r.TotalAmount,
		Status:        status,
		DaysOverdue:   aging.DaysOverdue,
		Bucket:        aging.Bucket,
		LineItems:     lineItems(r),
	}, nil
}

// Invoices 批量派生
func (d *Deriver) Invoices(records []domain.ShipmentRecord, now time.Time) ([]domain.Invoice, []Diagnostic) {
	return collect(records, "shipment", shipmentID, func(r domain.ShipmentRecord) (*domain.Invoice, error) {
		return d.Invoice(r, now)
	})
}

// lineItems 运费行 + 可选装卸费行
func lineItems(r domain.ShipmentRecord) []domain.LineItem {
	items := []domain.LineItem{{
		Description: "Freight charges",
		Quantity:    r.Quantity,
		Rate:        r.UnitRate,
		Amount:      r.Quantity.Mul(r.UnitRate),
	}}

	one := decimal.NewFromInt(1)
	if r.LoadingCharge != nil {
		items = append(items, domain.LineItem{Description: "Loading charges", Quantity: one, Rate: *r.LoadingCharge, Amount: *r.LoadingCharge})
	}
	if r.UnloadingCharge != nil {
		items = append(items, domain.LineItem{Description: "Unloading charges", Quantity: one, Rate: *r.UnloadingCharge, Amount: *r.UnloadingCharge})
	}
	return items
}
