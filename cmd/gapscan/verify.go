package main

import (
	"errors"
	"fmt"
	"slices"

	"github.com/ic-timon/gapscan/bench/gen"
	"github.com/ic-timon/gapscan/finder"
	"github.com/spf13/cobra"
)

// errMismatch is returned when the kernel disagrees with the reference.
var errMismatch = errors.New("result mismatch")

func init() {
	rootCmd.AddCommand(newVerifyCmd())
}

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <file>",
		Short: "Check the finder against the reference bitmap",
		Long: `The verify command resolves a dataset with the configured kernel and with
the O(N) reference bitmap, and fails if they disagree. For generated files the
result is also compared with the regenerated sample.

Example:
  gapscan verify data.gpsc
  gapscan verify data.gpsc --config wide.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, args[0])
		},
	}
}

type verifyResult struct {
	N         int64  `json:"n"`
	Missing   int    `json:"missing"`
	Reference bool   `json:"reference_match"`
	Generated *bool  `json:"generated_match,omitempty"`
	Error     string `json:"error,omitempty"`
}

func runVerify(cmd *cobra.Command, path string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ds, err := openDataset(path, false)
	if err != nil {
		return fmt.Errorf("failed to open dataset: %w", err)
	}
	defer ds.Close()
	h, present := ds.Header(), ds.Values()

	got, err := finder.New(cfg).Find(h.N, present)
	if err != nil {
		return err
	}
	want, err := finder.FindReference(h.N, present)
	if err != nil {
		return err
	}
	res := verifyResult{N: h.N, Missing: len(got), Reference: slices.Equal(got, want)}
	if h.Seed != 0 && h.Missing == h.N-h.Count {
		_, sample := gen.Dataset(h.N, h.Missing, h.Seed)
		ok := slices.Equal(got, sample)
		res.Generated = &ok
	}
	if !res.Reference || (res.Generated != nil && !*res.Generated) {
		res.Error = errMismatch.Error()
	}

	if jsonOut {
		if err := printJSON(cmd.OutOrStdout(), res); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "N=%d missing=%d reference=%v", res.N, res.Missing, res.Reference)
		if res.Generated != nil {
			fmt.Fprintf(cmd.OutOrStdout(), " generated=%v", *res.Generated)
		}
		fmt.Fprintln(cmd.OutOrStdout())
	}
	if res.Error != "" {
		return fmt.Errorf("%s: %w", path, errMismatch)
	}
	return nil
}
