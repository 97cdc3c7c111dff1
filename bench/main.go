// 压测入口：bench sweep|scale|parallel|storage
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type stageOpts struct {
	runs  int
	seed  int64
	quick bool // 缩小规模，用于冒烟
	dir   string
}

var opts stageOpts

var rootCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark stages for the missing-values finder",
	Long: `bench runs staged parameter sweeps over the finder and writes CSV
reports (plus a JSON run descriptor) under the report directory.

Stages:
  sweep    (a) fanout x bitmap threshold
  scale    (b) strategies x N x K
  parallel (c) workers for bucket resolution
  storage  (d) heap-decoded vs mmap-loaded datasets`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&opts.runs, "runs", 10, "timed runs per configuration")
	rootCmd.PersistentFlags().Int64Var(&opts.seed, "seed", 42, "dataset seed")
	rootCmd.PersistentFlags().BoolVar(&opts.quick, "quick", false, "smaller domains for a smoke run")
	rootCmd.PersistentFlags().StringVar(&opts.dir, "report-dir", "report", "report output directory")

	rootCmd.AddCommand(
		stageCmd("sweep", "a", "压测阶段 A: 参数寻优 (fanout x threshold)", runStageA),
		stageCmd("scale", "b", "压测阶段 B: 策略 x 规模", runStageB),
		stageCmd("parallel", "c", "压测阶段 C: 并发桶解析", runStageC),
		stageCmd("storage", "d", "压测阶段 D: 内存 vs mmap", runStageD),
	)
}

func stageCmd(use, alias, short string, run func(stageOpts) error) *cobra.Command {
	return &cobra.Command{
		Use:     use,
		Aliases: []string{alias},
		Short:   short,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.runs < 1 {
				return fmt.Errorf("--runs must be at least 1, got %d", opts.runs)
			}
			if err := run(opts); err != nil {
				return err
			}
			fmt.Println("压测完成")
			return nil
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
