package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/xxz807/cargofin/internal/finance/domain"
)

// 注意: ops.* 表由运单/费用系统维护, 这里只读, 不做任何写入

type PostgresShipmentRepo struct {
	db *gorm.DB
}

func NewShipmentRepo(db *gorm.DB) *PostgresShipmentRepo {
	return &PostgresShipmentRepo{db: db}
}

// ListShipments 全量读取运单及其收款记录
// 按 created_at, id 排序, 保证相同数据得到相同的输出顺序
func (r *PostgresShipmentRepo) ListShipments(ctx context.Context) ([]domain.ShipmentRecord, error) {
	var records []domain.ShipmentRecord
	err := r.db.WithContext(ctx).
		Preload("Payment").
		Order("created_at ASC").
		Order("id ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ---------------------------------------------------------

type PostgresExpenseRepo struct {
	db *gorm.DB
}

func NewExpenseRepo(db *gorm.DB) *PostgresExpenseRepo {
	return &PostgresExpenseRepo{db: db}
}

func (r *PostgresExpenseRepo) ListExpenses(ctx context.Context) ([]domain.ExpenseRecord, error) {
	var expenses []domain.ExpenseRecord
	if err := r.db.WithContext(ctx).Order("date ASC").Order("id ASC").Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// ---------------------------------------------------------

type PostgresRateRepo struct {
	db *gorm.DB
}

func NewRateRepo(db *gorm.DB) *PostgresRateRepo {
	return &PostgresRateRepo{db: db}
}

func (r *PostgresRateRepo) ListArticles(ctx context.Context) ([]domain.Article, error) {
	var articles []domain.Article
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *PostgresRateRepo) ListCustomerRates(ctx context.Context, customerID string) ([]domain.CustomerArticleRate, error) {
	var rates []domain.CustomerArticleRate
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("article_id ASC").
		Find(&rates).Error
	if err != nil {
		return nil, err
	}
	return rates, nil
}

var (
	_ domain.ShipmentSource = (*PostgresShipmentRepo)(nil)
	_ domain.ExpenseSource  = (*PostgresExpenseRepo)(nil)
	_ domain.RateSource     = (*PostgresRateRepo)(nil)
)
