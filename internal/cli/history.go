package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/en-tropyc/blueshift/internal/core/amount"
	"github.com/en-tropyc/blueshift/internal/core/vault"
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history <owner>",
	Short: "List the journaled transactions of an owner",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, err := vault.ParseOwner(args[0])
		if err != nil {
			return err
		}
		if !cfg.Journal.IsEnabled() {
			return fmt.Errorf("the journal is disabled; set journal.driver and journal.dsn")
		}

		n, err := openNode(cmd.Context())
		if err != nil {
			return err
		}
		defer n.Close()

		recs, err := n.journal.History(cmd.Context(), owner.String(), historyLimit)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tTYPE\tSEQ\tAMOUNT\tFEE\tRESULT\tHASH")
		for _, r := range recs {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\t%X\n",
				r.AppliedAt.Format(time.RFC3339), r.Type, r.Sequence,
				amount.Amount(r.Amount), amount.Amount(r.Fee), r.Result, r.Hash[:8])
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "show at most this many of the newest rows (0 for all)")
	rootCmd.AddCommand(historyCmd)
}
