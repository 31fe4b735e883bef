package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/en-tropyc/blueshift/internal/core/vault"
	"github.com/en-tropyc/blueshift/internal/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	content := fmt.Sprintf(`
[vault]
program_id = "00000000000000000000000000000000000000000000000000000000000000AA"
minimum_balance = 1000
base_fee = 10

[node_db]
type = "leveldb"
path = %q

[journal]
driver = "sqlite"
dsn = %q

[log]
level = "error"
`, filepath.Join(dir, "ledger"), filepath.Join(dir, "journal.db"))
	path := filepath.Join(dir, "vaultd.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// run executes the root command with args and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configFile, debug, quiet = "", false, false
	secretFlag, seedFlag, vaultFlag, sequenceFlag, offlineFlag = "", "", "", 0, false
	historyLimit, keygenSeed, initConfigForce = 0, "", false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestDepositWithdrawRoundTrip(t *testing.T) {
	conf := writeTestConfig(t)
	owner := vault.Owner(crypto.KeyPairFromSeed([]byte("alice")).AccountID()).String()

	out, err := run(t, "keygen", "--seed", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, owner)

	_, err = run(t, "--conf", conf, "airdrop", owner, "10")
	require.NoError(t, err)

	out, err = run(t, "--conf", conf, "deposit", "1", "--seed", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "tesSUCCESS")

	out, err = run(t, "--conf", conf, "deposit", "1", "--seed", "alice")
	require.ErrorIs(t, err, vault.ErrVaultAlreadyExists)
	assert.Contains(t, out, "tecDUPLICATE")

	out, err = run(t, "--conf", conf, "show", owner)
	require.NoError(t, err)
	assert.Contains(t, out, "vault balance: 1")
	assert.Contains(t, out, "sequence: 2")

	out, err = run(t, "--conf", conf, "withdraw", "--seed", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "tesSUCCESS")

	out, err = run(t, "--conf", conf, "show", owner)
	require.NoError(t, err)
	assert.Contains(t, out, "vault balance: none")

	out, err = run(t, "--conf", conf, "history", owner)
	require.NoError(t, err)
	assert.Contains(t, out, "VaultDeposit")
	assert.Contains(t, out, "tecDUPLICATE")
	assert.Contains(t, out, "VaultWithdraw")
}

func TestDeriveMatchesDeriver(t *testing.T) {
	conf := writeTestConfig(t)
	owner := vault.Owner(crypto.KeyPairFromSeed([]byte("bob")).AccountID())

	var programID [32]byte
	programID[31] = 0xAA
	want := vault.NewDeriver(programID).Derive(owner).String()

	out, err := run(t, "--conf", conf, "derive", owner.String())
	require.NoError(t, err)
	assert.Equal(t, want+"\n", out)
}

func TestForeignVaultRejected(t *testing.T) {
	conf := writeTestConfig(t)
	mallory := vault.Owner(crypto.KeyPairFromSeed([]byte("mallory")).AccountID()).String()

	_, err := run(t, "--conf", conf, "airdrop", mallory, "5")
	require.NoError(t, err)
	victim, err := run(t, "--conf", conf, "derive", vault.Owner(crypto.KeyPairFromSeed([]byte("alice")).AccountID()).String())
	require.NoError(t, err)

	_, err = run(t, "--conf", conf, "deposit", "1", "--seed", "mallory", "--vault", victim[:64])
	require.ErrorIs(t, err, vault.ErrInvalidIdentifier)
}

func TestSigningKeyRequired(t *testing.T) {
	conf := writeTestConfig(t)
	_, err := run(t, "--conf", conf, "withdraw")
	assert.Error(t, err)
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.toml")
	out, err := run(t, "init-config", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	_, err = run(t, "init-config", path)
	assert.Error(t, err)
	_, err = run(t, "init-config", path, "--force")
	assert.NoError(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "vaultd version")
}

func TestOfflineSignThenSubmit(t *testing.T) {
	conf := writeTestConfig(t)
	owner := vault.Owner(crypto.KeyPairFromSeed([]byte("carol")).AccountID()).String()

	_, err := run(t, "--conf", conf, "airdrop", owner, "3")
	require.NoError(t, err)

	_, err = run(t, "--conf", conf, "deposit", "1", "--seed", "carol", "--offline")
	assert.Error(t, err, "offline signing needs an explicit sequence")

	blob, err := run(t, "--conf", conf, "deposit", "1", "--seed", "carol", "--offline", "--sequence", "1")
	require.NoError(t, err)
	blob = strings.TrimSpace(blob)

	out, err := run(t, "--conf", conf, "show", owner)
	require.NoError(t, err)
	assert.Contains(t, out, "vault balance: none", "offline signing must not touch the ledger")

	out, err = run(t, "--conf", conf, "submit", blob)
	require.NoError(t, err)
	assert.Contains(t, out, "tesSUCCESS")

	out, err = run(t, "--conf", conf, "submit", blob)
	require.Error(t, err)
	assert.Contains(t, out, "tefPAST_SEQ")

	_, err = run(t, "--conf", conf, "submit", "zz")
	assert.Error(t, err)
}

func TestRetryHint(t *testing.T) {
	conf := writeTestConfig(t)
	owner := vault.Owner(crypto.KeyPairFromSeed([]byte("dave")).AccountID()).String()
	_, err := run(t, "--conf", conf, "airdrop", owner, "3")
	require.NoError(t, err)

	out, err := run(t, "--conf", conf, "deposit", "1", "--seed", "dave", "--sequence", "5")
	require.Error(t, err)
	assert.Contains(t, out, "terPRE_SEQ")
	assert.Contains(t, out, "may succeed if resubmitted later")
}

func TestDump(t *testing.T) {
	conf := writeTestConfig(t)
	owner := vault.Owner(crypto.KeyPairFromSeed([]byte("erin")).AccountID()).String()

	out, err := run(t, "--conf", conf, "dump")
	require.NoError(t, err)
	assert.Contains(t, out, "0 entries")

	_, err = run(t, "--conf", conf, "airdrop", owner, "3")
	require.NoError(t, err)
	_, err = run(t, "--conf", conf, "deposit", "1", "--seed", "erin")
	require.NoError(t, err)

	out, err = run(t, "--conf", conf, "dump")
	require.NoError(t, err)
	assert.Contains(t, out, "3 entries")
	assert.Contains(t, out, "AccountRoot owner="+owner)
	assert.Contains(t, out, "Holding amount=1")
	assert.Contains(t, out, "Vault owner="+owner+" balance=1")
}
