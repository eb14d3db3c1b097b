package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coregx/fuzzyre"
)

func newRootCmd() *cobra.Command {
	var inline bool
	var debug bool
	var configPath string

	cmd := &cobra.Command{
		Use:   "fuzzyre PATTERN TEXT",
		Short: "Align a regex pattern against text that almost matches",
		Long: `fuzzyre computes the minimum-cost edit alignment between a regex
pattern and a text, and prints the text annotated with the edits needed
to make it match: deletions in [- -], insertions in {+ +}.

PATTERN and TEXT name files by default; pass --inline to give the values
directly. Files ending in .zst or .gz are decompressed transparently.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			pattern, err := loadArg(args[0], inline)
			if err != nil {
				return fmt.Errorf("reading pattern: %w", err)
			}
			text, err := loadArg(args[1], inline)
			if err != nil {
				return fmt.Errorf("reading text: %w", err)
			}

			re, err := fuzzyre.CompileWithConfig(pattern, config)
			if err != nil {
				return err
			}
			res, err := re.Align(text)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if debug {
				fmt.Fprintf(out, "cost: %d\n", res.Cost)
				for _, op := range res.Ops {
					fmt.Fprintf(out, "  %s\n", op)
				}
				for i, spans := range res.Captures {
					fmt.Fprintf(out, "group %d: %v\n", i+1, spans)
				}
			}
			fmt.Fprintln(out, res.Diff())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&inline, "inline", "i", false, "treat PATTERN and TEXT as literal values, not file paths")
	cmd.Flags().BoolVar(&debug, "debug", false, "print the edit cost and operation trace before the diff")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a TOML config file (costs, markers)")

	return cmd
}

func loadArg(arg string, inline bool) (string, error) {
	if inline {
		return arg, nil
	}
	data, err := readInput(arg)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
