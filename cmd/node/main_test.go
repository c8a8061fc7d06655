package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopallet/codec"
	demo "gopallet/testing"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		configPath, logLevel, execPrintReceipts = "", "", false
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestDemoCommand(t *testing.T) {
	out, err := runCommand(t, "demo", "--log-level", "panic")
	require.NoError(t, err)

	assert.Contains(t, out, "block_number: 2,")
	assert.Contains(t, out, `"alice": 12,`)
	assert.Contains(t, out, `"This is bob's second claim.": "bob",`)
}

func TestExecCommand(t *testing.T) {
	dir := t.TempDir()

	data, err := codec.EncodeBlocks(demo.DemoChain())
	require.NoError(t, err)
	blocksPath := filepath.Join(dir, "blocks.json")
	require.NoError(t, os.WriteFile(blocksPath, data, 0o600))

	configFile := filepath.Join(dir, "node.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("genesis:\n  alice: 100\nlog:\n  level: panic\n"), 0o600))

	out, err := runCommand(t, "exec", "--config", configFile, "--receipts", blocksPath)
	require.NoError(t, err)
	assert.Contains(t, out, `"block_number": 1`)
	assert.Contains(t, out, `"bob": 68,`)
}

func TestExecCommandRejectsBadBlocks(t *testing.T) {
	dir := t.TempDir()
	blocksPath := filepath.Join(dir, "blocks.json")
	require.NoError(t, os.WriteFile(blocksPath, []byte(`[{"header": {"block_number": 2}}]`), 0o600))

	_, err := runCommand(t, "exec", "--log-level", "panic", blocksPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "incoming block number does not match")
}
