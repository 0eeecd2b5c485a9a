// Package main contains the cli implementation of the tool. It uses
// cobra for cli tool implementation, the same per-command flag-struct
// pattern used elsewhere in this codebase.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type convertFlags struct {
	from string
	to   string
	out  string
}

type filterFlags struct {
	format string
	out    string
}

type sqlFlags struct {
	dialect string
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "haystack",
		Short: "Project Haystack grid tooling",
	}

	rootCmd.AddCommand(convertCmd())
	rootCmd.AddCommand(filterCmd())
	rootCmd.AddCommand(sqlCmd())
	rootCmd.AddCommand(mergeCmd())
	rootCmd.AddCommand(diffCmd())
	rootCmd.AddCommand(unionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func convertCmd() *cobra.Command {
	flags := &convertFlags{}
	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert a grid between Zinc, JSON, CSV, and Trio",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runConvert(args[0], flags)
		},
	}
	cmd.Flags().StringVar(&flags.from, "from", "", "Source format: zinc, json, csv, trio (inferred from extension when empty)")
	cmd.Flags().StringVar(&flags.to, "to", "zinc", "Target format: zinc, json, csv, trio")
	cmd.Flags().StringVarP(&flags.out, "output", "o", "", "Output file (stdout when empty)")
	return cmd
}

func runConvert(path string, flags *convertFlags) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	from := flags.from
	if from == "" {
		from = detectFormat(path)
	}
	g, err := loadGrid(data, from)
	if err != nil {
		return fmt.Errorf("failed to parse %s as %s: %w", path, from, err)
	}

	out, err := saveGrid(g, flags.to)
	if err != nil {
		return fmt.Errorf("failed to render as %s: %w", flags.to, err)
	}
	return writeOutput(out, flags.out)
}

func filterCmd() *cobra.Command {
	flags := &filterFlags{}
	cmd := &cobra.Command{
		Use:   "filter <file> <expr>",
		Short: "Evaluate a filter expression in-memory against a grid file",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runFilter(args[0], args[1], flags)
		},
	}
	cmd.Flags().StringVar(&flags.format, "format", "", "Input format: zinc, json, csv, trio (inferred from extension when empty)")
	cmd.Flags().StringVarP(&flags.out, "output", "o", "", "Output file (stdout when empty)")
	return cmd
}

func sqlCmd() *cobra.Command {
	flags := &sqlFlags{}
	cmd := &cobra.Command{
		Use:   "sql <expr>",
		Short: "Translate a filter expression into a SQL WHERE clause",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runSQL(args[0], flags)
		},
	}
	cmd.Flags().StringVar(&flags.dialect, "dialect", "sqlite", "SQL dialect: sqlite or postgres")
	return cmd
}

func writeOutput(content []byte, outFile string) error {
	if outFile == "" {
		_, err := os.Stdout.Write(content)
		return err
	}
	if err := os.WriteFile(outFile, content, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Fprintf(os.Stderr, "output saved to %s\n", outFile)
	return nil
}
