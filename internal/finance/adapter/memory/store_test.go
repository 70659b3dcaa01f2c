package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xxz807/cargofin/internal/finance/domain"
)

const snapshotJSON = `{
  "shipments": [
    {
      "id": "s1",
      "created_at": "2024-01-01T00:00:00Z",
      "sender_id": "acme",
      "receiver_id": "globex",
      "total_amount": "1000",
      "payment_classification": "ToPay",
      "lifecycle_status": "delivered",
      "quantity": "10",
      "unit_rate": "100",
      "loading_charge": "25.5",
      "payment": {"date": "2024-01-05T00:00:00Z", "amount": "400", "method": "UPI"}
    }
  ],
  "expenses": [
    {"id": "e1", "date": "2024-01-03T00:00:00Z", "vendor": "Shell", "category": "fuel", "amount": "120", "amount_paid": "0"}
  ],
  "articles": [{"id": "a1", "name": "Cement", "base_rate": "50"}],
  "customer_rates": [
    {"customer_id": "acme", "article_id": "a1", "rate": "45"},
    {"customer_id": "globex", "article_id": "a1", "rate": "55"}
  ]
}`

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte(snapshotJSON), 0o600))

	store, err := LoadFile(path)
	require.NoError(t, err)
	ctx := context.Background()

	shipments, err := store.ListShipments(ctx)
	require.NoError(t, err)
	require.Len(t, shipments, 1)
	s := shipments[0]
	assert.Equal(t, domain.ToPay, s.PaymentClassification)
	assert.True(t, s.TotalAmount.Equal(decimal.NewFromInt(1000)))
	require.NotNil(t, s.LoadingCharge)
	assert.True(t, s.LoadingCharge.Equal(decimal.NewFromFloat(25.5)))
	require.NotNil(t, s.Payment)
	assert.Equal(t, domain.UPI, s.Payment.Method)

	expenses, err := store.ListExpenses(ctx)
	require.NoError(t, err)
	assert.Len(t, expenses, 1)

	rates, err := store.ListCustomerRates(ctx, "acme")
	require.NoError(t, err)
	require.Len(t, rates, 1)
	assert.True(t, rates[0].Rate.Equal(decimal.NewFromInt(45)))

	none, err := store.ListCustomerRates(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	_, err = LoadFile(path)
	assert.ErrorContains(t, err, "decode snapshot")
}

func TestStore_ReturnsCopies(t *testing.T) {
	pay := &domain.PaymentRecord{Amount: decimal.NewFromInt(5)}
	store := NewStore(Snapshot{Shipments: []domain.ShipmentRecord{{ID: "s1", Payment: pay}}})
	ctx := context.Background()

	// 修改输入不影响存储
	pay.Amount = decimal.NewFromInt(99)

	first, err := store.ListShipments(ctx)
	require.NoError(t, err)
	first[0].ID = "changed"
	first[0].Payment.Amount = decimal.NewFromInt(77)

	second, err := store.ListShipments(ctx)
	require.NoError(t, err)
	assert.Equal(t, "s1", second[0].ID)
	assert.True(t, second[0].Payment.Amount.Equal(decimal.NewFromInt(5)))
}

func TestStore_CanceledContext(t *testing.T) {
	store := NewStore(Snapshot{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.ListShipments(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = store.ListExpenses(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
