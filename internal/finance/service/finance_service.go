package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xxz807/cargofin/internal/finance/aggregate"
	"github.com/xxz807/cargofin/internal/finance/derive"
	"github.com/xxz807/cargofin/internal/finance/domain"
	"github.com/xxz807/cargofin/internal/finance/query"
)

// PageSizes 各视图默认页大小
type PageSizes struct {
	Invoices    int
	Receivables int
	Payables    int
	Payments    int
	Ledger      int
}

func DefaultPageSizes() PageSizes {
	return PageSizes{Invoices: 10, Receivables: 10, Payables: 10, Payments: 10, Ledger: 15}
}

// Options 服务参数, 零值字段取默认
type Options struct {
	Derive    derive.Config
	PageSizes PageSizes
	Clock     func() time.Time
}

// Request 一次视图查询
type Request struct {
	query.Query
	Now time.Time // 零值时使用服务时钟
}

// View 视图结果: 当前页 + 过滤结果的汇总 + 被跳过的记录
type View[T any] struct {
	AsOf time.Time `json:"as_of"`
	query.Page[T]
	Summary     aggregate.Summary   `json:"summary"`
	Diagnostics []derive.Diagnostic `json:"diagnostics"`
}

// FinanceService 财务派生服务
// 不缓存任何派生结果, 每次请求都从数据源重新计算
type FinanceService struct {
	shipments domain.ShipmentSource
	expenses  domain.ExpenseSource
	rates     domain.RateSource
	deriver   *derive.Deriver
	pageSizes PageSizes
	clock     func() time.Time
	logger    *zap.Logger
}

func NewFinanceService(
	logger *zap.Logger,
	shipments domain.ShipmentSource,
	expenses domain.ExpenseSource,
	rates domain.RateSource,
	opts Options,
) *FinanceService {
	if opts.Derive == (derive.Config{}) {
		opts.Derive = derive.DefaultConfig()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	defaults := DefaultPageSizes()
	sizes := opts.PageSizes
	sizes.Invoices = orDefault(sizes.Invoices, defaults.Invoices)
	sizes.Receivables = orDefault(sizes.Receivables, defaults.Receivables)
	sizes.Payables = orDefault(sizes.Payables, defaults.Payables)
	sizes.Payments = orDefault(sizes.Payments, defaults.Payments)
	sizes.Ledger = orDefault(sizes.Ledger, defaults.Ledger)

	return &FinanceService{
		shipments: shipments,
		expenses:  expenses,
		rates:     rates,
		deriver:   derive.New(opts.Derive),
		pageSizes: sizes,
		clock:     opts.Clock,
		logger:    logger,
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func (s *FinanceService) now(req Request) time.Time {
	if !req.Now.IsZero() {
		return req.Now
	}
	return s.clock()
}

// Invoices 发票视图
func (s *FinanceService) Invoices(ctx context.Context, req Request) (*View[domain.Invoice], error) {
	records, err := s.shipments.ListShipments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	now := s.now(req)
	items, diags := s.deriver.Invoices(records, now)
	s.report("invoices", diags)
	return build(items, InvoiceSchema, req.Query, s.pageSizes.Invoices, now, diags), nil
}

// Receivables 应收视图
func (s *FinanceService) Receivables(ctx context.Context, req Request) (*View[domain.Receivable], error) {
	records, err := s.shipments.ListShipments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	now := s.now(req)
	items, diags := s.deriver.Receivables(records, now)
	s.report("receivables", diags)
	return build(items, ReceivableSchema, req.Query, s.pageSizes.Receivables, now, diags), nil
}

// Payables 应付视图
func (s *FinanceService) Payables(ctx context.Context, req Request) (*View[domain.Payable], error) {
	expenses, err := s.expenses.ListExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	now := s.now(req)
	items, diags := s.deriver.Payables(expenses, now)
	s.report("payables", diags)
	return build(items, PayableSchema, req.Query, s.pageSizes.Payables, now, diags), nil
}

// Payments 收款视图
func (s *FinanceService) Payments(ctx context.Context, req Request) (*View[domain.Payment], error) {
	records, err := s.shipments.ListShipments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	items, diags := s.deriver.Payments(records)
	s.report("payments", diags)
	return build(items, PaymentSchema, req.Query, s.pageSizes.Payments, s.now(req), diags), nil
}

// Ledger 合并流水视图; 未指定排序时按日期倒序
func (s *FinanceService) Ledger(ctx context.Context, req Request) (*View[domain.LedgerEntry], error) {
	records, err := s.shipments.ListShipments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	expenses, err := s.expenses.ListExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	now := s.now(req)
	items, diags := s.deriver.Ledger(records, expenses, now)
	s.report("ledger", diags)
	return build(items, LedgerSchema, req.Query, s.pageSizes.Ledger, now, diags), nil
}

// CustomerRates 客户协议价及折扣
func (s *FinanceService) CustomerRates(ctx context.Context, customerID string) ([]domain.RateView, error) {
	articles, err := s.rates.ListArticles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	rates, err := s.rates.ListCustomerRates(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("list customer rates: %w", err)
	}

	byID := make(map[string]domain.Article, len(articles))
	for _, a := range articles {
		byID[a.ID] = a
	}

	views := make([]domain.RateView, 0, len(rates))
	for _, r := range rates {
		article, ok := byID[r.ArticleID]
		if !ok {
			s.logger.Warn("Rate references unknown article",
				zap.String("customer_id", r.CustomerID),
				zap.String("article_id", r.ArticleID),
			)
			continue
		}
		views = append(views, domain.NewRateView(article, r))
	}
	return views, nil
}

// build 过滤 -> 汇总 (基于过滤结果) -> 排序 -> 分页
func build[T any](items []T, schema query.Schema[T], q query.Query, pageSize int, now time.Time, diags []derive.Diagnostic) *View[T] {
	filtered := query.Select(items, schema, q.Filter)
	summary := aggregate.Aggregate(filtered, schema)
	query.Order(filtered, schema, q.Sort)

	if q.PageSize <= 0 {
		q.PageSize = pageSize
	}
	return &View[T]{
		AsOf:        now,
		Page:        query.Paginate(filtered, q.Page, q.PageSize),
		Summary:     summary,
		Diagnostics: diags,
	}
}

func (s *FinanceService) report(view string, diags []derive.Diagnostic) {
	for _, d := range diags {
		s.logger.Warn("Skipped invalid record",
			zap.String("view", view),
			zap.String("kind", d.Kind),
			zap.String("record_id", d.RecordID),
			zap.String("field", d.Field),
			zap.String("reason", d.Reason),
		)
	}
}
