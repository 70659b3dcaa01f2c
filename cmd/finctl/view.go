package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xxz807/cargofin/internal/finance/api"
	"github.com/xxz807/cargofin/internal/finance/query"
	"github.com/xxz807/cargofin/internal/finance/service"
)

var viewKinds = []string{"invoices", "receivables", "payables", "payments", "ledger"}

func newViewCmd() *cobra.Command {
	var q api.ListQuery

	cmd := &cobra.Command{
		Use:       "view <invoices|receivables|payables|payments|ledger>",
		Short:     "Print one filtered, sorted and paginated view",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: viewKinds,
		Example: `  # Overdue receivables as of a fixed date, largest first
  finctl view receivables -i snapshot.json --now 2024-02-15 --status overdue --sort amount_due --dir desc

  # Second page of January's ledger
  finctl view ledger -i snapshot.json --from 2024-01-01 --to 2024-01-31 --page 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			switch args[0] {
			case "invoices":
				return printView(ctx, cmd, q, service.InvoiceSchema, svc.Invoices)
			case "receivables":
				return printView(ctx, cmd, q, service.ReceivableSchema, svc.Receivables)
			case "payables":
				return printView(ctx, cmd, q, service.PayableSchema, svc.Payables)
			case "payments":
				return printView(ctx, cmd, q, service.PaymentSchema, svc.Payments)
			case "ledger":
				return printView(ctx, cmd, q, service.LedgerSchema, svc.Ledger)
			}
			return fmt.Errorf("unknown view %q", args[0])
		},
	}

	f := cmd.Flags()
	f.StringVar(&q.Search, "search", "", "Case-insensitive substring search")
	f.StringVar(&q.Status, "status", "", "Exact status")
	f.StringVar(&q.Category, "category", "", "Exact category (billing, method, expense category or ledger kind)")
	f.StringVar(&q.From, "from", "", "Start date, inclusive (YYYY-MM-DD)")
	f.StringVar(&q.To, "to", "", "End date, inclusive (YYYY-MM-DD)")
	f.StringVar(&q.Bucket, "bucket", "", "Aging bucket: current, 1-30, 31-60, 61-90, 90+")
	f.StringVar(&q.Sort, "sort", "", "Sort field")
	f.StringVar(&q.Dir, "dir", "asc", "Sort direction: asc or desc")
	f.IntVar(&q.Page, "page", 1, "Page number, starting at 1")
	f.IntVar(&q.PageSize, "page-size", 0, "Page size (default: per-view config)")
	f.StringVar(&q.Now, "now", "", "Evaluate as of this instant (RFC3339 or YYYY-MM-DD)")
	return cmd
}

func printView[T any](
	ctx context.Context,
	cmd *cobra.Command,
	q api.ListQuery,
	schema query.Schema[T],
	load func(context.Context, service.Request) (*service.View[T], error),
) error {
	req, err := q.ToRequest(schema.HasSort)
	if err != nil {
		return err
	}
	view, err := load(ctx, req)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), view)
}
