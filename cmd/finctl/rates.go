package main

import (
	"github.com/spf13/cobra"
)

func newRatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Print a customer's negotiated rates against the base rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			customer, _ := cmd.Flags().GetString("customer")
			svc, err := loadService(cmd)
			if err != nil {
				return err
			}
			rates, err := svc.CustomerRates(cmd.Context(), customer)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), rates)
		},
	}
	cmd.Flags().String("customer", "", "Customer ID")
	_ = cmd.MarkFlagRequired("customer")
	return cmd
}
