package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/sangkips/loyalty-admin/internal/application/service"
	"github.com/sangkips/loyalty-admin/internal/domain/settlement"
	"github.com/spf13/cobra"
)

func newSettlementCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "settlement",
		Aliases: []string{"settlements"},
		Short:   "Settlement tools",
	}
	cmd.AddCommand(newSettlementCalcCommand(opts))
	return cmd
}

func newSettlementCalcCommand(opts *options) *cobra.Command {
	var form settlement.Form
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Preview a settlement without saving it",
		Long: `Run the settlement calculator on the given amounts. Values are read the way
the console form reads them: blank or non-numeric amounts count as zero.`,
		Example: "  adminctl settlement calc --bill 1234.56 --commission 12.5 --tax 15.25 --fee 3.10 --settled 1000",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// the calculator never calls the loyalty API
			svc := service.NewSettlementService(nil, service.CatalogDeps{})
			preview, err := svc.Calculate(form)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.asJSON {
				return printJSON(out, preview)
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintf(tw, "Commission\t%s\t\n", preview.CommissionAmount.StringFixed(2))
			fmt.Fprintf(tw, "Settlement amount\t%s\t\n", preview.SettlementAmount.StringFixed(2))
			fmt.Fprintf(tw, "Pending\t%s\t\n", preview.PendingAmount.StringFixed(2))
			fmt.Fprintf(tw, "Extra paid\t%s\t\n", preview.ExtraPaidAmount.StringFixed(2))
			fmt.Fprintf(tw, "Net settlement\t%s\t\n", preview.NetSettlementAmount.StringFixed(2))
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "Status: %s\n", preview.Label)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar((*string)(&form.BillAmount), "bill", "", "Bill amount")
	flags.StringVar((*string)(&form.CommissionPercentage), "commission", "", "Commission percentage")
	flags.StringVar((*string)(&form.TaxAmount), "tax", "", "Tax amount")
	flags.StringVar((*string)(&form.ProcessingFee), "fee", "", "Processing fee")
	flags.StringVar((*string)(&form.SettledAmount), "settled", "", "Amount already settled")
	return cmd
}
