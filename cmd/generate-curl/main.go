package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"gopallet/codec"
	"gopallet/mocks"
	"gopallet/runtime"
	demo "gopallet/testing"
)

var (
	outDir     string
	nodeURL    string
	extraCount int
	seed       int64
)

var rootCmd = &cobra.Command{
	Use:   "generate-curl",
	Short: "Write curl scripts that submit the demo chain to a running node",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return generate(cmd)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&outDir, "out", "o", "curl", "output directory")
	rootCmd.Flags().StringVar(&nodeURL, "url", "http://localhost:8080", "node base URL")
	rootCmd.Flags().IntVar(&extraCount, "extra-blocks", 3, "random blocks appended after the demo chain")
	rootCmd.Flags().Int64Var(&seed, "seed", 1, "seed for the random blocks")
}

// buildChain returns the demo chain followed by random mixed blocks over the
// demo accounts.
func buildChain() []runtime.Block {
	blocks := demo.DemoChain()

	rng := rand.New(rand.NewSource(seed))
	accounts := []runtime.AccountID{demo.Alice, demo.Bob, demo.Charlie}
	contents := []runtime.Content{"doc-1", "doc-2", "doc-3"}
	for i := 0; i < extraCount; i++ {
		number := runtime.BlockNumber(len(blocks) + 1)
		blocks = append(blocks, mocks.GenerateMixedBlock(rng, number, accounts, contents, 4, 10))
	}
	return blocks
}

func generate(cmd *cobra.Command) error {
	blocks := buildChain()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return errors.Wrap(err, "failed to create output directory")
	}

	for _, block := range blocks {
		data, err := codec.EncodeBlock(block)
		if err != nil {
			return errors.Wrapf(err, "block %d", block.Header.BlockNumber)
		}
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, data, "", "  "); err != nil {
			return err
		}

		number := block.Header.BlockNumber
		script := fmt.Sprintf(`#!/bin/bash
echo "=== POST /api/blocks - block %d (%d extrinsics) ==="

curl -X POST %s/api/blocks \
  -H "Content-Type: application/json" \
  -d '%s' \
  --max-time 2 \
  --connect-timeout 2 \
  --fail-with-body \
  | jq '.' 2>/dev/null || cat
echo -e "\n"
`, number, len(block.Extrinsics), nodeURL, shellQuote(pretty.String()))

		filename := filepath.Join(outDir, fmt.Sprintf("post_block_%d.sh", number))
		if err := writeScript(filename, script); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Generated: %s\n", filename)
	}

	sequential := fmt.Sprintf(`#!/bin/bash
echo "=== Sequential block submission ==="

if ! curl -s --connect-timeout 2 --max-time 2 %[1]s/api/chain/height > /dev/null; then
    echo "Node not responding at %[1]s"
    echo "Start it with: go run ./cmd/node serve"
    exit 1
fi

DIR="$(cd "$(dirname "$0")" && pwd)"
`, nodeURL)
	for _, block := range blocks {
		n := block.Header.BlockNumber
		sequential += fmt.Sprintf("echo \"Submitting block %d...\"\n\"$DIR/post_block_%d.sh\" || echo \"Block %d failed, continuing...\"\n\n", n, n, n)
	}
	sequential += fmt.Sprintf(`echo "Final state:"
curl -s --connect-timeout 2 --max-time 2 "%s/api/state?format=text"
echo ""
`, nodeURL)

	filename := filepath.Join(outDir, "post_all_blocks.sh")
	if err := writeScript(filename, sequential); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Generated: %s\n", filename)
	fmt.Fprintf(cmd.OutOrStdout(), "\nGenerated %d block scripts. Start a node with the demo genesis (alice: 100) first.\n", len(blocks))
	return nil
}

// shellQuote escapes single quotes for use inside a single-quoted string.
func shellQuote(s string) string {
	return strings.ReplaceAll(s, "'", `'\''`)
}

func writeScript(filename, content string) error {
	if err := os.WriteFile(filename, []byte(content), 0o755); err != nil {
		return errors.Wrapf(err, "failed to write %s", filename)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Error("generate-curl failed")
		os.Exit(1)
	}
}
