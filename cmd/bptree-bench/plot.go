// Copyright (c) 2024 OpenBao a Series of LF Projects, LLC
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// renderChart writes a grouped bar chart of per-operation latencies, one
// bar group per workload, one color per store.
func renderChart(path string, results ...result) error {
	p := plot.New()
	p.Title.Text = "bptree vs pebble latency"
	p.Y.Label.Text = "ns/op"
	p.NominalX("insert", "lookup", "scan")

	width := vg.Points(20)
	offset := -width * vg.Length(len(results)-1) / 2

	for i, r := range results {
		bars, err := plotter.NewBarChart(plotter.Values{
			float64(r.insertNs),
			float64(r.lookupNs),
			float64(r.scanNs),
		}, width)
		if err != nil {
			return err
		}
		bars.Color = plotutil.Color(i)
		bars.Offset = offset + width*vg.Length(i)
		p.Add(bars)
		p.Legend.Add(r.name, bars)
	}
	p.Legend.Top = true

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
