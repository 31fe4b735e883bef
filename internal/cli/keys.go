package cli

import (
	"fmt"

	"github.com/en-tropyc/blueshift/internal/core/vault"
	"github.com/en-tropyc/blueshift/internal/crypto"
	"github.com/spf13/cobra"
)

var keygenSeed string

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate an owner key pair",
	Long: `Generate a secp256k1 key pair and print its secret, public key and owner
address. With --seed the key is derived deterministically from a passphrase.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			kp  *crypto.KeyPair
			err error
		)
		if keygenSeed != "" {
			kp = crypto.KeyPairFromSeed([]byte(keygenSeed))
		} else if kp, err = crypto.GenerateKeyPair(); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "secret:     %s\n", kp.PrivateKeyHex())
		fmt.Fprintf(out, "public key: %X\n", kp.PublicKey())
		fmt.Fprintf(out, "owner:      %s\n", vault.Owner(kp.AccountID()))
		return nil
	},
}

var deriveCmd = &cobra.Command{
	Use:   "derive <owner>",
	Short: "Print the vault identifier of an owner",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, err := vault.ParseOwner(args[0])
		if err != nil {
			return err
		}
		programID, err := cfg.Vault.GetProgramID()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), vault.NewDeriver(programID).Derive(owner))
		return nil
	},
}

func init() {
	keygenCmd.Flags().StringVar(&keygenSeed, "seed", "", "derive the key from this passphrase")
	rootCmd.AddCommand(keygenCmd, deriveCmd)
}
