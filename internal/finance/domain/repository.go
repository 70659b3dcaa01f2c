package domain

import (
	"context"
)

// ShipmentSource 运单数据源
// 这是一个 Port (端口), 由 adapter 层提供 Postgres / 内存实现
type ShipmentSource interface {
	// ListShipments 返回当前全部运单快照, 调用方不得修改
	ListShipments(ctx context.Context) ([]ShipmentRecord, error)
}

// ExpenseSource 费用数据源
type ExpenseSource interface {
	ListExpenses(ctx context.Context) ([]ExpenseRecord, error)
}

// RateSource 运价数据源
type RateSource interface {
	ListArticles(ctx context.Context) ([]Article, error)

	// ListCustomerRates 查询客户的全部协议运价
	ListCustomerRates(ctx context.Context, customerID string) ([]CustomerArticleRate, error)
}
