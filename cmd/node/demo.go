package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gopallet/runtime"
	demo "gopallet/testing"
)

func init() {
	rootCmd.AddCommand(demoCmd)
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Execute the two demo blocks and print the final state",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, err := loadConfig()
		if err != nil {
			return err
		}

		rt := demo.NewDemoRuntime(runtime.WithLogger(log))
		for _, block := range demo.DemoChain() {
			if _, err := rt.ExecuteBlock(block); err != nil {
				return err
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), rt.String())
		return nil
	},
}
