package main

import (
	"fmt"

	"github.com/ic-timon/gapscan/bench/gen"
	"github.com/ic-timon/gapscan/finder/store"
	"github.com/spf13/cobra"
)

var (
	genN    int64
	genK    int64
	genSeed int64
)

func init() {
	cmd := newGenCmd()
	cmd.Flags().Int64VarP(&genN, "n", "n", 1_000_000, "Domain size N")
	cmd.Flags().Int64VarP(&genK, "k", "k", 10, "Number of missing values K")
	cmd.Flags().Int64Var(&genSeed, "seed", 42, "Generator seed")
	rootCmd.AddCommand(cmd)
}

func newGenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gen <file>",
		Short: "Generate a dataset file",
		Long: `The gen command writes a dataset holding every value of [0, N) except K
random ones, shuffled. The file is written atomically.

Example:
  gapscan gen data.gpsc -n 10000000 -k 250 --seed 7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(cmd, args[0])
		},
	}
}

func runGen(cmd *cobra.Command, path string) error {
	if genN < 1 {
		return fmt.Errorf("-n must be at least 1, got %d", genN)
	}
	if genK < 0 || genK > genN {
		return fmt.Errorf("-k must lie in [0, %d], got %d", genN, genK)
	}
	present, _ := gen.Dataset(genN, genK, genSeed)
	h := store.Header{N: genN, Missing: genK, Seed: genSeed}
	if err := store.WriteFileAtomic(path, h, present); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}
	if jsonOut {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"path": path, "n": genN, "k": genK, "seed": genSeed, "count": len(present),
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: N=%d K=%d present=%d seed=%d\n", path, genN, genK, len(present), genSeed)
	return nil
}
