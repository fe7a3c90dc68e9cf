// Package main is the entry point for the mlbhits CLI, which scrapes
// Statcast and FanGraphs data and predicts which batted balls become hits.
package main

import "github.com/pable/go-mlb-hits/cmd"

func main() {
	cmd.Execute()
}
