package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/xxz807/cargofin/internal/finance/domain"
	"github.com/xxz807/cargofin/internal/finance/query"
	"github.com/xxz807/cargofin/internal/finance/service"
)

// ListQuery 列表视图的查询参数, 例如
// GET /api/v1/finance/invoices?status=overdue&sort=amount&dir=desc&page=2
type ListQuery struct {
	Search   string `form:"search"`
	Status   string `form:"status"`
	Category string `form:"category"`
	From     string `form:"from"` // YYYY-MM-DD, 含当天
	To       string `form:"to"`   // YYYY-MM-DD, 含当天
	Bucket   string `form:"bucket"`
	Sort     string `form:"sort"`
	Dir      string `form:"dir" binding:"omitempty,oneof=asc desc"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size" binding:"omitempty,max=500"`
	Now      string `form:"now"` // RFC3339 或 YYYY-MM-DD, 覆盖服务时钟
}

// DashboardQuery 首页统计只接受 now
type DashboardQuery struct {
	Now string `form:"now"`
}

// ErrorResponse 统一错误响应
type ErrorResponse struct {
	Error string `json:"error"`
}

// ToRequest DTO -> Service Request, hasSort 校验排序字段属于当前视图
func (q ListQuery) ToRequest(hasSort func(string) bool) (service.Request, error) {
	req := service.Request{
		Query: query.Query{
			Filter: query.Filter{
				Search:   q.Search,
				Status:   q.Status,
				Category: q.Category,
			},
			Page:     q.Page,
			PageSize: q.PageSize,
		},
	}

	if q.Bucket != "" {
		b := domain.AgingBucket(q.Bucket)
		if !b.IsValid() {
			return req, fmt.Errorf("invalid bucket %q", q.Bucket)
		}
		req.Filter.Bucket = b
	}

	if q.From != "" {
		from, err := time.Parse(time.DateOnly, q.From)
		if err != nil {
			return req, fmt.Errorf("invalid from %q: expected YYYY-MM-DD", q.From)
		}
		req.Filter.From = &from
	}
	if q.To != "" {
		day, err := time.Parse(time.DateOnly, q.To)
		if err != nil {
			return req, fmt.Errorf("invalid to %q: expected YYYY-MM-DD", q.To)
		}
		// 包含 to 当天的全部记录
		to := day.AddDate(0, 0, 1).Add(-time.Nanosecond)
		req.Filter.To = &to
	}
	if req.Filter.From != nil && req.Filter.To != nil && req.Filter.From.After(*req.Filter.To) {
		return req, errors.New("from must not be after to")
	}

	if q.Dir != "" && q.Dir != string(query.Asc) && q.Dir != string(query.Desc) {
		return req, fmt.Errorf("invalid dir %q: expected asc or desc", q.Dir)
	}
	if q.Sort != "" {
		if !hasSort(q.Sort) {
			return req, fmt.Errorf("%w: %q", query.ErrInvalidSort, q.Sort)
		}
		req.Sort = query.Sort{Field: q.Sort, Direction: query.Asc}
		if q.Dir == string(query.Desc) {
			req.Sort.Direction = query.Desc
		}
	}

	now, err := ParseNow(q.Now)
	if err != nil {
		return req, err
	}
	req.Now = now
	return req, nil
}

// ParseNow 空字符串返回零值, 由服务使用自身时钟
func ParseNow(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid now %q: expected RFC3339 or YYYY-MM-DD", s)
}
