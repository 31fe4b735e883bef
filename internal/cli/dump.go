package cli

import (
	"fmt"
	"io"

	"github.com/en-tropyc/blueshift/internal/core/amount"
	"github.com/en-tropyc/blueshift/internal/core/ledger/entry"
	"github.com/en-tropyc/blueshift/internal/core/vault"
	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print every ledger entry in key order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := openNode(cmd.Context())
		if err != nil {
			return err
		}
		defer n.Close()

		out := cmd.OutOrStdout()
		count := 0
		err = n.store.ForEach(cmd.Context(), func(key [32]byte, typ entry.Type, data []byte) error {
			count++
			return printEntry(out, key, typ, data)
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d entries\n", count)
		return nil
	},
}

func printEntry(out io.Writer, key [32]byte, typ entry.Type, data []byte) error {
	switch typ {
	case entry.TypeAccountRoot:
		var e entry.AccountRoot
		if err := entry.Decode(data, &e); err != nil {
			return err
		}
		fmt.Fprintf(out, "%X %s owner=%s balance=%s sequence=%d\n",
			key, typ, vault.Owner(e.Account), amount.Amount(e.Balance), e.Sequence)
	case entry.TypeHolding:
		var e entry.Holding
		if err := entry.Decode(data, &e); err != nil {
			return err
		}
		fmt.Fprintf(out, "%X %s amount=%s\n", key, typ, amount.Amount(e.Amount))
	case entry.TypeVault:
		var e entry.Vault
		if err := entry.Decode(data, &e); err != nil {
			return err
		}
		fmt.Fprintf(out, "%X %s owner=%s balance=%s\n",
			key, typ, vault.Owner(e.Owner), amount.Amount(e.Balance))
	default:
		fmt.Fprintf(out, "%X %s %d bytes\n", key, typ, len(data))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}
