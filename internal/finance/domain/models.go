package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShipmentRecord 运单 (Booking) 实体
// 对应数据库表: ops.shipments, 由运单系统维护, 本引擎只读
type ShipmentRecord struct {
	ID                    string                `gorm:"primaryKey;type:varchar(64)" json:"id"`
	CreatedAt             time.Time             `gorm:"not null;index" json:"created_at"`
	SenderID              string                `gorm:"type:varchar(64);not null;index" json:"sender_id"`
	ReceiverID            string                `gorm:"type:varchar(64);not null;index" json:"receiver_id"`
	Origin                string                `gorm:"type:varchar(100)" json:"origin,omitempty"`
	Destination           string                `gorm:"type:varchar(100)" json:"destination,omitempty"`
	ArticleID             string                `gorm:"type:varchar(64)" json:"article_id,omitempty"`
	TotalAmount           decimal.Decimal       `gorm:"type:decimal(20,4);not null;default:0" json:"total_amount"`
	PaymentClassification PaymentClassification `gorm:"type:varchar(16);not null" json:"payment_classification"`
	LifecycleStatus       LifecycleStatus       `gorm:"type:varchar(16);not null" json:"lifecycle_status"`
	Quantity              decimal.Decimal       `gorm:"type:decimal(20,4);not null;default:0" json:"quantity"`
	UnitRate              decimal.Decimal       `gorm:"type:decimal(20,4);not null;default:0" json:"unit_rate"`
	LoadingCharge         *decimal.Decimal      `gorm:"type:decimal(20,4)" json:"loading_charge,omitempty"`
	UnloadingCharge       *decimal.Decimal      `gorm:"type:decimal(20,4)" json:"unloading_charge,omitempty"`

	// 上游显式的收款信息 (一对一, 可为空)
	Payment *PaymentRecord `gorm:"foreignKey:ShipmentID;references:ID" json:"payment,omitempty"`
}

func (ShipmentRecord) TableName() string {
	return "ops.shipments"
}

// BilledParty 付款方: 已付由寄件方承担, 到付由收件方承担
func (r ShipmentRecord) BilledParty() string {
	if r.PaymentClassification == Paid {
		return r.SenderID
	}
	return r.ReceiverID
}

// PaymentRecord 运单收款记录
// 对应数据库表: ops.shipment_payments
type PaymentRecord struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"-"`
	ShipmentID string          `gorm:"uniqueIndex;type:varchar(64);not null" json:"-"`
	Date       time.Time       `gorm:"not null" json:"date"`
	Amount     decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	Method     PaymentMethod   `gorm:"type:varchar(16)" json:"method,omitempty"`
	Reference  string          `gorm:"type:varchar(64)" json:"reference,omitempty"`
	Status     PaymentStatus   `gorm:"type:varchar(16)" json:"status,omitempty"`
}

func (PaymentRecord) TableName() string {
	return "ops.shipment_payments"
}

// ExpenseRecord 费用支出 (油费、过路费、维修等), 来自外部费用系统
// 对应数据库表: ops.expenses
type ExpenseRecord struct {
	ID          string          `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	Vendor      string          `gorm:"type:varchar(100);not null" json:"vendor"`
	Category    string          `gorm:"type:varchar(32);not null;index" json:"category"`
	Description string          `gorm:"type:text" json:"description,omitempty"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	AmountPaid  decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"amount_paid"`
}

func (ExpenseRecord) TableName() string {
	return "ops.expenses"
}

// Article 货品及其标准运价
type Article struct {
	ID       string          `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name     string          `gorm:"type:varchar(100);not null" json:"name"`
	BaseRate decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"base_rate"`
}

func (Article) TableName() string {
	return "ops.articles"
}

// CustomerArticleRate 客户协议运价 (覆盖标准运价)
type CustomerArticleRate struct {
	CustomerID string          `gorm:"primaryKey;type:varchar(64)" json:"customer_id"`
	ArticleID  string          `gorm:"primaryKey;type:varchar(64)" json:"article_id"`
	Rate       decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"rate"`
}

func (CustomerArticleRate) TableName() string {
	return "ops.customer_article_rates"
}
