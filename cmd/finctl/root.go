package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xxz807/cargofin/internal/finance/adapter/memory"
	"github.com/xxz807/cargofin/internal/finance/service"
	"github.com/xxz807/cargofin/internal/platform/config"
	"github.com/xxz807/cargofin/internal/platform/logger"
)

var version = "0.1.0"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "finctl",
		Short: "Derive invoices, balances and ledgers from a shipment snapshot",
		Long: `finctl runs the finance derivation engine against a JSON snapshot of
shipments, expenses and customer rates, and prints the resulting view as JSON.

The snapshot has the shape:
  {"shipments": [...], "expenses": [...], "articles": [...], "customer_rates": [...]}

Configuration is read from configs/config.yaml (or CARGOFIN_CONFIG) and
CARGOFIN_* environment variables, the same as the API server.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "", "Config file path (default: $CARGOFIN_CONFIG or configs/config.yaml)")
	root.PersistentFlags().StringP("input", "i", "", "Snapshot JSON file")
	root.PersistentFlags().Bool("quiet", false, "Do not log skipped records to stderr")
	_ = root.MarkPersistentFlagRequired("input")

	root.AddCommand(newViewCmd(), newDashboardCmd(), newRatesCmd())
	return root
}

// loadService 命令共用: 配置 -> 日志 -> 快照 -> 服务
func loadService(cmd *cobra.Command) (*service.FinanceService, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfgPath, _ := cmd.Flags().GetString("config")
	input, _ := cmd.Flags().GetString("input")
	quiet, _ := cmd.Flags().GetBool("quiet")

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	log := zap.NewNop()
	if !quiet {
		if log, err = logger.NewLogger("release", cfg.Log.Level); err != nil {
			return nil, err
		}
	}

	store, err := memory.LoadFile(input)
	if err != nil {
		return nil, err
	}
	return service.NewFinanceService(log, store, store, store, cfg.ServiceOptions()), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
