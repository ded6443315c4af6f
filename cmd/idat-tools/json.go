// Copyright (c) 2024 Neomantra Corp

package main

import (
	"fmt"
	"os"

	"github.com/segmentio/encoding/json"
	"github.com/spf13/cobra"

	"github.com/yhoogstrate/idat-tools"
)

var jsonCmd = &cobra.Command{
	Use:   "json file...",
	Short: "Prints the specified file's metadata and probe matrix shape as JSON",
	Long:  "Prints the specified file's metadata and probe matrix shape as JSON",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, sourceFile := range args {
			if err := printJSON(sourceFile); err != nil {
				fmt.Fprintf(os.Stderr, "error: reading %s: %s\n", sourceFile, err.Error())
			}
		}
	},
}

// modelSummary is the JSON projection of a Model: its unexported fields
// are not directly marshalable, so this mirrors the shape the source's
// IDATdata.__str__ reports.
type modelSummary struct {
	Magic            string            `json:"magic"`
	Version          uint64            `json:"version"`
	NProbes          uint32            `json:"n_probes"`
	Manifest         string            `json:"manifest"`
	Barcode          string            `json:"barcode"`
	ChipType         string            `json:"chip_type"`
	ChipLabel        string            `json:"chip_label"`
	RedGreen         uint32            `json:"red_green"`
	SampleID         string            `json:"sample_id"`
	Description      string            `json:"description"`
	Plate            string            `json:"plate"`
	Well             string            `json:"well"`
	OldStyleManifest string            `json:"old_style_manifest"`
	RunInfo          []idat.RunInfoEntry `json:"run_info"`
}

func printJSON(sourceFile string) error {
	src, err := idat.OpenSeekableSource(sourceFile)
	if err != nil {
		return err
	}
	if closer, ok := src.(*os.File); ok {
		defer closer.Close()
	}

	model, err := idat.ReadModel(src)
	if err != nil {
		return err
	}

	summary := modelSummary{
		Magic:            model.Header.Magic,
		Version:          model.Header.Version,
		NProbes:          model.NProbes(),
		Manifest:         model.Meta().Manifest(),
		Barcode:          model.Meta().Barcode(),
		ChipType:         model.Meta().ChipType(),
		ChipLabel:        model.Meta().ChipLabel(),
		RedGreen:         model.Meta().RedGreen(),
		SampleID:         model.Meta().SampleID(),
		Description:      model.Meta().Description(),
		Plate:            model.Meta().Plate(),
		Well:             model.Meta().Well(),
		OldStyleManifest: model.Meta().OldStyleManifest(),
		RunInfo:          model.RunInfo(),
	}

	jstr, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	fmt.Printf("%s\n", jstr)
	return nil
}
