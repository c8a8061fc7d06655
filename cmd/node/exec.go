package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"gopallet/codec"
	"gopallet/runtime"
	"gopallet/runtime/processing"
	"gopallet/runtime/store"
)

var execPrintReceipts bool

func init() {
	execCmd.Flags().BoolVar(&execPrintReceipts, "receipts", false, "print each block receipt as JSON")
	rootCmd.AddCommand(execCmd)
}

var execCmd = &cobra.Command{
	Use:   "exec <blocks.json>",
	Short: "Execute a JSON array of blocks against the configured genesis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return errors.Wrap(err, "failed to read blocks")
		}
		blocks, err := codec.DecodeBlocks(data)
		if err != nil {
			return err
		}

		stateStore := store.NewMemoryStateStore(runtime.WithLogger(log))
		if err := stateStore.ApplyGenesis(cfg.Genesis); err != nil {
			return err
		}

		receipts, err := processing.NewBlockProcessor(stateStore, log).ProcessBlocks(blocks)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if execPrintReceipts {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			for _, receipt := range receipts {
				if err := enc.Encode(receipt); err != nil {
					return err
				}
			}
		}

		snapshot, err := stateStore.Snapshot()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, snapshot.String())
		return nil
	},
}
