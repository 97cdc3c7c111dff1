package main

import (
	"bufio"
	"fmt"
	"strconv"

	"github.com/ic-timon/gapscan/finder"
	"github.com/ic-timon/gapscan/finder/store"
	"github.com/spf13/cobra"
)

var (
	findStrategy string
	findHeap     bool
	findStats    bool
)

func init() {
	cmd := newFindCmd()
	cmd.Flags().StringVar(&findStrategy, "strategy", "", "Run a named strategy instead of the configured kernel")
	cmd.Flags().BoolVar(&findHeap, "heap", false, "Decode the dataset onto the heap instead of mapping it")
	cmd.Flags().BoolVar(&findStats, "stats", false, "Print resolution statistics")
	rootCmd.AddCommand(cmd)
}

func newFindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find <file>",
		Short: "Print the missing values of a dataset",
		Long: `The find command resolves the missing values of a dataset file and
prints them in ascending order, one per line.

Example:
  gapscan find data.gpsc
  gapscan find data.gpsc --stats --json
  gapscan find data.gpsc --strategy quad`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(cmd, args[0])
		},
	}
}

type findResult struct {
	N       int64         `json:"n"`
	Present int           `json:"present"`
	Missing []int64       `json:"missing"`
	Stats   *finder.Stats `json:"stats,omitempty"`
}

func openDataset(path string, heap bool) (store.Dataset, error) {
	if heap {
		return store.ReadFile(path)
	}
	return store.OpenMmap(path)
}

func runFind(cmd *cobra.Command, path string) error {
	ds, err := openDataset(path, findHeap)
	if err != nil {
		return fmt.Errorf("failed to open dataset: %w", err)
	}
	defer ds.Close()
	n, present := ds.Header().N, ds.Values()

	res := findResult{N: n, Present: len(present)}
	if findStrategy != "" {
		s, err := finder.StrategyByName(findStrategy)
		if err != nil {
			return err
		}
		if res.Missing, err = s.Find(n, present); err != nil {
			return err
		}
	} else {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		missing, stats, err := finder.New(cfg).FindWithStats(n, present)
		if err != nil {
			return err
		}
		res.Missing = missing
		if findStats {
			res.Stats = &stats
		}
	}

	if jsonOut {
		return printJSON(cmd.OutOrStdout(), res)
	}
	w := bufio.NewWriter(cmd.OutOrStdout())
	for _, m := range res.Missing {
		w.WriteString(strconv.FormatInt(m, 10))
		w.WriteByte('\n')
	}
	if res.Stats != nil {
		s := res.Stats
		fmt.Fprintf(w, "# missing=%d ranges=%d full=%d empty=%d checksum=%d bitmap=%d subdivide=%d scanned=%d depth=%d duration=%s\n",
			len(res.Missing), s.Ranges(), s.FullRanges, s.EmptyRanges, s.ChecksumRecoveries,
			s.BitmapResolves, s.Subdivisions, s.ElementsScanned, s.MaxDepth, s.Duration)
	}
	return w.Flush()
}
