package cli

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/en-tropyc/blueshift/internal/core/amount"
	"github.com/en-tropyc/blueshift/internal/core/engine"
	"github.com/en-tropyc/blueshift/internal/core/tx"
	"github.com/en-tropyc/blueshift/internal/core/vault"
	"github.com/spf13/cobra"
)

var (
	secretFlag   string
	seedFlag     string
	sequenceFlag uint64
	vaultFlag    string
	offlineFlag  bool
)

var depositCmd = &cobra.Command{
	Use:   "deposit <amount>",
	Short: "Create the signer's vault holding amount coins",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amt, err := amount.Parse(args[0])
		if err != nil {
			return err
		}
		return submit(cmd, func(id vault.Identifier, seq uint64) *tx.Transaction {
			return tx.NewDeposit(id, amt, seq)
		})
	},
}

var withdrawCmd = &cobra.Command{
	Use:   "withdraw",
	Short: "Return the whole vault balance to the signer and close the vault",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return submit(cmd, tx.NewWithdraw)
	},
}

// submit signs the transaction built by build and applies it, or prints the
// signed blob with --offline.
func submit(cmd *cobra.Command, build func(vault.Identifier, uint64) *tx.Transaction) error {
	kp, err := keyFromFlags(secretFlag, seedFlag)
	if err != nil {
		return err
	}
	owner := vault.Owner(kp.AccountID())

	if offlineFlag {
		if sequenceFlag == 0 {
			return fmt.Errorf("--sequence is required with --offline")
		}
		programID, err := cfg.Vault.GetProgramID()
		if err != nil {
			return err
		}
		id, err := claimedVault(vault.NewDeriver(programID), owner)
		if err != nil {
			return err
		}
		t := build(id, sequenceFlag)
		if err := t.Sign(kp); err != nil {
			return err
		}
		blob, err := t.Blob()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%X\n", blob)
		return nil
	}

	n, err := openNode(cmd.Context())
	if err != nil {
		return err
	}
	defer n.Close()

	id, err := claimedVault(n.engine.Deriver(), owner)
	if err != nil {
		return err
	}
	seq := sequenceFlag
	if seq == 0 {
		if seq, err = n.engine.NextSequence(cmd.Context(), owner); err != nil {
			return err
		}
	}

	t := build(id, seq)
	if err := t.Sign(kp); err != nil {
		return err
	}
	res, err := n.engine.Submit(cmd.Context(), t)
	printResult(cmd, res)
	return err
}

// claimedVault is --vault when set, otherwise the owner's derived vault.
func claimedVault(d *vault.Deriver, owner vault.Owner) (vault.Identifier, error) {
	if vaultFlag != "" {
		return vault.ParseIdentifier(vaultFlag)
	}
	return d.Derive(owner), nil
}

var submitCmd = &cobra.Command{
	Use:   "submit <blob>",
	Short: "Apply a transaction signed with --offline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := hex.DecodeString(strings.TrimSpace(args[0]))
		if err != nil {
			return fmt.Errorf("blob is not hex: %w", err)
		}
		t, err := tx.Decode(raw)
		if err != nil {
			return err
		}

		n, err := openNode(cmd.Context())
		if err != nil {
			return err
		}
		defer n.Close()

		res, err := n.engine.Submit(cmd.Context(), t)
		printResult(cmd, res)
		return err
	},
}

func printResult(cmd *cobra.Command, res engine.ApplyResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "hash:   %X\n", res.Hash)
	fmt.Fprintf(out, "result: %s (%s)\n", res.Result, res.Message)
	switch {
	case res.Result.ShouldRetry():
		fmt.Fprintln(out, "note:   may succeed if resubmitted later")
	case res.Result.IsTem():
		fmt.Fprintln(out, "note:   malformed; resubmitting will not help")
	}
	if res.Applied {
		fmt.Fprintf(out, "moved:  %s\n", res.Moved)
		fmt.Fprintf(out, "fee:    %s\n", res.Fee)
	}
}

func init() {
	for _, c := range []*cobra.Command{depositCmd, withdrawCmd} {
		c.Flags().StringVar(&secretFlag, "secret", "", "hex private key of the owner")
		c.Flags().StringVar(&seedFlag, "seed", "", "passphrase the owner key is derived from")
		c.Flags().Uint64Var(&sequenceFlag, "sequence", 0, "account sequence (default: the account's next)")
		c.Flags().StringVar(&vaultFlag, "vault", "", "claimed vault identifier (default: derived from the signer)")
		c.Flags().BoolVar(&offlineFlag, "offline", false, "print the signed blob instead of submitting it")
	}
	rootCmd.AddCommand(depositCmd, withdrawCmd, submitCmd)
}
