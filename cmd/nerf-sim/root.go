// Package main wires the three pipeline commands named in §6 (map,
// schedule, report) together. This is intentionally thin: all of the
// scheduling logic lives in ir/mapping/optlib/opsched/dags; this package
// only loads config documents and prints results.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	graphPath string
	hwPath    string
	hintsPath string
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "nerf-sim",
	Short: "Two-stage PPA scheduler for neural-rendering accelerators",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&graphPath, "graph", "", "path to the operator graph JSON document")
	rootCmd.PersistentFlags().StringVar(&hwPath, "hw", "", "path to the hardware config JSON/YAML document")
	rootCmd.PersistentFlags().StringVar(&hintsPath, "hints", "", "path to an optional optimization hints JSON/YAML document")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(mapCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(reportCmd)
}

func setLogLevel() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}
