// Copyright (c) 2024 Neomantra Corp

package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/yhoogstrate/idat-tools"
)

var infoCmd = &cobra.Command{
	Use:   "info file...",
	Short: "Prints a human-readable summary of one or more IDAT files",
	Long:  "Prints a human-readable summary of one or more IDAT files",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, sourceFile := range args {
			if err := printInfo(sourceFile); err != nil {
				fmt.Fprintf(os.Stderr, "error: reading %s: %s\n", sourceFile, err.Error())
			}
		}
	},
}

func printInfo(sourceFile string) error {
	src, err := idat.OpenSeekableSource(sourceFile)
	if err != nil {
		return err
	}
	if closer, ok := src.(*os.File); ok {
		defer closer.Close()
	}

	var fileSize int64
	if fi, err := os.Stat(sourceFile); err == nil {
		fileSize = fi.Size()
	}

	model, err := idat.ReadModel(src)
	if err != nil {
		return err
	}
	logger.Debug("read model", "file", sourceFile, "probes", model.NProbes(), "size", humanize.Bytes(uint64(fileSize)))

	fmt.Printf("%s (%s)\n", sourceFile, humanize.Bytes(uint64(fileSize)))
	fmt.Println(model.String())
	return nil
}
