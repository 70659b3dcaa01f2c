package main

import (
	"github.com/spf13/cobra"

	"github.com/xxz807/cargofin/internal/finance/api"
)

func newDashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Print revenue, balance and collection statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			nowStr, _ := cmd.Flags().GetString("now")
			now, err := api.ParseNow(nowStr)
			if err != nil {
				return err
			}
			svc, err := loadService(cmd)
			if err != nil {
				return err
			}
			d, err := svc.Dashboard(cmd.Context(), now)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), d)
		},
	}
	cmd.Flags().String("now", "", "Evaluate as of this instant (RFC3339 or YYYY-MM-DD)")
	return cmd
}
