package cli

import (
	"fmt"

	"github.com/sangkips/loyalty-admin/internal/domain/entity"
	"github.com/spf13/cobra"
)

func newStoresCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "stores",
		Aliases: []string{"store"},
		Short:   "Featured store ordering",
	}
	cmd.AddCommand(newSequenceCommand(opts), newReorderCommand(opts))
	return cmd
}

var sequenceColumns = []string{"position", "store_name", "store_id", "sequence_no", "is_active"}

func printSequence(s *session, items []entity.StoreSequence) error {
	if s.asJSON {
		return printJSON(s.out, items)
	}
	records, err := rows(items)
	if err != nil {
		return err
	}
	for i := range records {
		records[i]["position"] = i + 1
	}
	return printTable(s.out, sequenceColumns, records)
}

func newSequenceCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sequence",
		Short: "Show the featured stores in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			items, err := s.services.StoreSequence.Sequence(s.ctx)
			if err != nil {
				return err
			}
			return printSequence(s, items)
		},
	}
}

func newReorderCommand(opts *options) *cobra.Command {
	var from, to int
	cmd := &cobra.Command{
		Use:     "reorder",
		Short:   "Move a featured store to another position",
		Long:    "Move the store at position --from to position --to. Positions are the ones printed by 'adminctl stores sequence', starting at 1.",
		Example: "  adminctl stores reorder --from 4 --to 1",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if from < 1 || to < 1 {
				return fmt.Errorf("--from and --to are positions starting at 1")
			}
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			result, err := s.services.StoreSequence.Move(s.ctx, from-1, to-1)
			if err != nil {
				return err
			}
			if err := printSequence(s, result.Items); err != nil {
				return err
			}
			if result.RolledBack {
				return fmt.Errorf("%s", result.Message)
			}
			if !s.asJSON {
				fmt.Fprintln(s.out, "\nOrder saved.")
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&from, "from", 0, "Current position")
	cmd.Flags().IntVar(&to, "to", 0, "New position")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
