package main

import (
	"fmt"
	"os"

	"github.com/hayspec/haystack-core/gridalgebra"
	"github.com/hayspec/haystack-core/value"
	"github.com/spf13/cobra"
)

type algebraFlags struct {
	format string
	out    string
}

func mergeCmd() *cobra.Command {
	flags := &algebraFlags{}
	cmd := &cobra.Command{
		Use:   "merge <base> <patch>",
		Short: "Overlay patch onto base by id, cell by cell",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runAlgebra(args[0], args[1], flags, gridalgebra.Merge)
		},
	}
	bindAlgebraFlags(cmd, flags)
	return cmd
}

func diffCmd() *cobra.Command {
	flags := &algebraFlags{}
	cmd := &cobra.Command{
		Use:   "diff <a> <b>",
		Short: "Produce a patch such that merge(a, diff(a, b)) reproduces b",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runAlgebra(args[0], args[1], flags, gridalgebra.Diff)
		},
	}
	bindAlgebraFlags(cmd, flags)
	return cmd
}

func unionCmd() *cobra.Command {
	flags := &algebraFlags{}
	cmd := &cobra.Command{
		Use:   "union <a> <b>",
		Short: "Concatenate a and b by id, keeping the first occurrence",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runAlgebra(args[0], args[1], flags, gridalgebra.Union)
		},
	}
	bindAlgebraFlags(cmd, flags)
	return cmd
}

func bindAlgebraFlags(cmd *cobra.Command, flags *algebraFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "", "Input and output format: zinc, json, csv, trio (inferred from the first file's extension when empty)")
	cmd.Flags().StringVarP(&flags.out, "output", "o", "", "Output file (stdout when empty)")
}

func runAlgebra(aPath, bPath string, flags *algebraFlags, op func(a, b *value.Grid) *gridalgebra.Result) error {
	format := flags.format
	if format == "" {
		format = detectFormat(aPath)
	}

	a, err := readGridFile(aPath, format)
	if err != nil {
		return err
	}
	b, err := readGridFile(bPath, format)
	if err != nil {
		return err
	}

	res := op(a, b)
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	rendered, err := saveGrid(res.Grid, format)
	if err != nil {
		return fmt.Errorf("failed to render result: %w", err)
	}
	return writeOutput(rendered, flags.out)
}

func readGridFile(path, format string) (*value.Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	g, err := loadGrid(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s as %s: %w", path, format, err)
	}
	return g, nil
}
