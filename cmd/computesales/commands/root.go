package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/iliyamo/hotel-reservation/internal/sales"
)

var outPath string

// Execute runs the computesales command with os.Args.
func Execute() error {
	return newRootCmd(os.Stdout, os.Stderr).Execute()
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "computesales PRICE_CATALOGUE.json SALES_RECORD.json",
		Short:         "Total a sales record against a price catalogue",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			warn := func(msg string) { fmt.Fprintln(stdout, msg) }
			res, err := sales.Compute(args[0], args[1], warn)
			if err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", err)
				return err
			}

			fmt.Fprintln(stdout)
			if err := sales.WriteSummary(stdout, res.Total, res.Elapsed); err != nil {
				return err
			}
			f, err := os.Create(outPath)
			if err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", err)
				return err
			}
			defer f.Close()
			if err := sales.WriteSummary(f, res.Total, res.Elapsed); err != nil {
				return err
			}
			return f.Close()
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.Flags().StringVarP(&outPath, "out", "o", "SalesResults.txt", "summary file to write")
	return cmd
}
