// Copyright (c) 2024 Neomantra Corp

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

///////////////////////////////////////////////////////////////////////////////

var (
	verbose bool
	logger  *slog.Logger
)

func requireNoError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
		os.Exit(1)
	}
}

func requireNoErrorWithoutPrint(err error) {
	if err != nil {
		os.Exit(1)
	}
}

///////////////////////////////////////////////////////////////////////////////

func main() {
	cobra.OnInitialize(initLogger)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")

	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(jsonCmd)
	rootCmd.AddCommand(mixCmd)
	mixCmd.Flags().StringVar(&mixReferenceFile, "reference", "", "Reference IDAT file")
	mixCmd.Flags().StringVar(&mixAdmixtureFile, "admixture", "", "Admixture IDAT file")
	mixCmd.Flags().Float64Var(&mixFraction, "fraction", 0, "Admixture fraction in [0, 1]")
	mixCmd.Flags().StringVar(&mixOutFile, "out", "", "Output IDAT file")
	mixCmd.MarkFlagRequired("reference")
	mixCmd.MarkFlagRequired("admixture")
	mixCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVar(&querySQL, "sql", "SELECT * FROM probes LIMIT 20", "SQL to run against the loaded probes table")

	err := rootCmd.Execute()
	requireNoErrorWithoutPrint(err)
}

func initLogger() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

///////////////////////////////////////////////////////////////////////////////

var rootCmd = &cobra.Command{
	Use:   "idat-tools",
	Short: "idat-tools reads, writes, and mixes Illumina IDAT v3 files",
	Long:  "idat-tools reads, writes, and mixes Illumina IDAT v3 files",
}
