package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xxz807/cargofin/internal/finance/query"
	"github.com/xxz807/cargofin/internal/finance/service"
)

type FinanceHandler struct {
	svc    *service.FinanceService
	logger *zap.Logger
}

func NewFinanceHandler(svc *service.FinanceService, logger *zap.Logger) *FinanceHandler {
	return &FinanceHandler{svc: svc, logger: logger}
}

// RegisterRoutes 注册路由, 全部为只读接口
func (h *FinanceHandler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/finance")
	{
		g.GET("/invoices", listView(h, "invoices", service.InvoiceSchema, h.svc.Invoices))
		g.GET("/receivables", listView(h, "receivables", service.ReceivableSchema, h.svc.Receivables))
		g.GET("/payables", listView(h, "payables", service.PayableSchema, h.svc.Payables))
		g.GET("/payments", listView(h, "payments", service.PaymentSchema, h.svc.Payments))
		g.GET("/ledger", listView(h, "ledger", service.LedgerSchema, h.svc.Ledger))
		g.GET("/dashboard", h.GetDashboard)
		g.GET("/customers/:id/rates", h.GetCustomerRates)
	}
}

// listView 各列表视图共用的处理流程
func listView[T any](
	h *FinanceHandler,
	view string,
	schema query.Schema[T],
	load func(context.Context, service.Request) (*service.View[T], error),
) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q ListQuery

		// 1. 参数绑定与基础校验
		if err := c.ShouldBindQuery(&q); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request: " + err.Error()})
			return
		}

		// 2. DTO 转换
		req, err := q.ToRequest(schema.HasSort)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}

		// 3. 调用业务逻辑
		result, err := load(c.Request.Context(), req)
		if err != nil {
			h.fail(c, view, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// GetDashboard 首页统计
// GET /api/v1/finance/dashboard?now=2024-02-15
func (h *FinanceHandler) GetDashboard(c *gin.Context) {
	var q DashboardQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request: " + err.Error()})
		return
	}
	now, err := ParseNow(q.Now)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	d, err := h.svc.Dashboard(c.Request.Context(), now)
	if err != nil {
		h.fail(c, "dashboard", err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// GetCustomerRates 客户协议价
// GET /api/v1/finance/customers/:id/rates
func (h *FinanceHandler) GetCustomerRates(c *gin.Context) {
	id := c.Param("id")

	rates, err := h.svc.CustomerRates(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "customer_rates", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"customer_id": id,
		"items":       rates,
	})
}

// fail 数据源错误: 记录详情, 对外只返回概要
func (h *FinanceHandler) fail(c *gin.Context, view string, err error) {
	h.logger.Error("Failed to build view",
		zap.String("view", view),
		zap.String("request_id", c.GetString("request_id")),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load " + view})
}
