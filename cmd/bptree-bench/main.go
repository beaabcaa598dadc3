// Copyright (c) 2024 OpenBao a Series of LF Projects, LLC
// SPDX-License-Identifier: MPL-2.0

// bptree-bench runs insert, point-lookup, and range-scan workloads against
// the bptree map and against Pebble as an ordered-store baseline, printing
// per-operation latencies and optionally rendering them as a bar chart.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var (
		entries int
		order   int
		seed    int64
		out     string
	)

	rootCmd := &cobra.Command{
		Use:   "bptree-bench",
		Short: "Benchmark the bptree map against Pebble",
		RunE: func(cmd *cobra.Command, args []string) error {
			if entries <= 0 {
				return fmt.Errorf("entries must be positive, got %d", entries)
			}

			mapRes, err := benchMap(entries, order, seed)
			if err != nil {
				return fmt.Errorf("map benchmark: %w", err)
			}
			pebbleRes, err := benchPebble(entries, seed)
			if err != nil {
				return fmt.Errorf("pebble benchmark: %w", err)
			}

			printResults(cmd, entries, mapRes, pebbleRes)

			if out != "" {
				if err := renderChart(out, mapRes, pebbleRes); err != nil {
					return fmt.Errorf("render chart: %w", err)
				}
				cmd.Printf("wrote %s\n", out)
			}
			return nil
		},
	}

	rootCmd.Flags().IntVarP(&entries, "entries", "n", 1_000_000, "Number of keys per workload")
	rootCmd.Flags().IntVar(&order, "order", 0, "Branching factor for the map (0 uses the default)")
	rootCmd.Flags().Int64Var(&seed, "seed", 1, "Seed for the key generator")
	rootCmd.Flags().StringVar(&out, "out", "", "PNG file for the latency chart (empty skips plotting)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printResults(cmd *cobra.Command, entries int, results ...result) {
	cmd.Printf("%d entries per workload\n\n", entries)
	cmd.Printf("%-10s %14s %14s %14s %10s\n", "store", "insert ns/op", "lookup ns/op", "scan ns/ent", "heap MB")
	for _, r := range results {
		cmd.Printf("%-10s %14d %14d %14d %10d\n", r.name, r.insertNs, r.lookupNs, r.scanNs, r.heapMB)
	}
}
