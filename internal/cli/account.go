package cli

import (
	"fmt"

	"github.com/en-tropyc/blueshift/internal/core/amount"
	"github.com/en-tropyc/blueshift/internal/core/vault"
	"github.com/spf13/cobra"
)

var airdropCmd = &cobra.Command{
	Use:   "airdrop <owner> <amount>",
	Short: "Credit coins to an owner's account",
	Long: `Credit an owner's external account, creating it if needed. The amount is
in coins and may carry up to nine decimal places.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, err := vault.ParseOwner(args[0])
		if err != nil {
			return err
		}
		amt, err := amount.Parse(args[1])
		if err != nil {
			return err
		}

		n, err := openNode(cmd.Context())
		if err != nil {
			return err
		}
		defer n.Close()

		bal, err := n.engine.Fund(cmd.Context(), owner, amt)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s balance: %s\n", owner, bal)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <owner>",
	Short: "Show an owner's account and vault",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, err := vault.ParseOwner(args[0])
		if err != nil {
			return err
		}

		n, err := openNode(cmd.Context())
		if err != nil {
			return err
		}
		defer n.Close()

		acct, err := n.engine.AccountInfo(cmd.Context(), owner)
		if err != nil {
			return err
		}
		v, err := n.engine.VaultInfo(cmd.Context(), owner)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "owner:    %s\n", owner)
		if acct.Exists {
			fmt.Fprintf(out, "balance:  %s\n", acct.Balance)
			fmt.Fprintf(out, "sequence: %d\n", acct.Sequence)
		} else {
			fmt.Fprintln(out, "account:  not found")
		}
		fmt.Fprintf(out, "vault:    %s\n", v.ID)
		if v.Exists {
			fmt.Fprintf(out, "vault balance: %s\n", v.Balance)
		} else {
			fmt.Fprintln(out, "vault balance: none")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(airdropCmd, showCmd)
}
