// Package memory 内存数据源, 用于测试和离线 CLI
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/xxz807/cargofin/internal/finance/domain"
)

// Snapshot 数据快照 (JSON 文件格式)
type Snapshot struct {
	Shipments     []domain.ShipmentRecord      `json:"shipments"`
	Expenses      []domain.ExpenseRecord       `json:"expenses"`
	Articles      []domain.Article             `json:"articles"`
	CustomerRates []domain.CustomerArticleRate `json:"customer_rates"`
}

// Store 实现 ShipmentSource / ExpenseSource / RateSource
// 读取时返回副本, 调用方修改不影响存储
type Store struct {
	mu   sync.RWMutex
	snap Snapshot
}

var (
	_ domain.ShipmentSource = (*Store)(nil)
	_ domain.ExpenseSource  = (*Store)(nil)
	_ domain.RateSource     = (*Store)(nil)
)

func NewStore(snap Snapshot) *Store {
	s := &Store{}
	s.Replace(snap)
	return s
}

// LoadFile 从 JSON 文件加载快照
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	return NewStore(snap), nil
}

// Replace 整体替换快照, 模拟上游数据在两次查询之间发生变化
func (s *Store) Replace(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = Snapshot{
		Shipments:     cloneShipments(snap.Shipments),
		Expenses:      slices.Clone(snap.Expenses),
		Articles:      slices.Clone(snap.Articles),
		CustomerRates: slices.Clone(snap.CustomerRates),
	}
}

func (s *Store) ListShipments(ctx context.Context) ([]domain.ShipmentRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneShipments(s.snap.Shipments), nil
}

func (s *Store) ListExpenses(ctx context.Context) ([]domain.ExpenseRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.snap.Expenses), nil
}

func (s *Store) ListArticles(ctx context.Context) ([]domain.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.snap.Articles), nil
}

func (s *Store) ListCustomerRates(ctx context.Context, customerID string) ([]domain.CustomerArticleRate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.CustomerArticleRate
	for _, r := range s.snap.CustomerRates {
		if r.CustomerID == customerID {
			out = append(out, r)
		}
	}
	return out, nil
}

// cloneShipments 深拷贝, 包括指针字段
func cloneShipments(in []domain.ShipmentRecord) []domain.ShipmentRecord {
	if in == nil {
		return nil
	}
	out := make([]domain.ShipmentRecord, len(in))
	for i, r := range in {
		if r.Payment != nil {
			p := *r.Payment
			r.Payment = &p
		}
		if r.LoadingCharge != nil {
			v := *r.LoadingCharge
			r.LoadingCharge = &v
		}
		if r.UnloadingCharge != nil {
			v := *r.UnloadingCharge
			r.UnloadingCharge = &v
		}
		out[i] = r
	}
	return out
}
