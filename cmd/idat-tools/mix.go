// Copyright (c) 2024 Neomantra Corp

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yhoogstrate/idat-tools"
)

var (
	mixReferenceFile string
	mixAdmixtureFile string
	mixFraction      float64
	mixOutFile       string
)

var mixCmd = &cobra.Command{
	Use:   "mix",
	Short: "Blends an admixture IDAT file into a reference IDAT file at the given fraction",
	Long:  "Blends an admixture IDAT file into a reference IDAT file at the given fraction",
	Run: func(cmd *cobra.Command, args []string) {
		requireNoError(runMix())
	},
}

func runMix() error {
	refSrc, err := idat.OpenSeekableSource(mixReferenceFile)
	if err != nil {
		return err
	}
	if closer, ok := refSrc.(*os.File); ok {
		defer closer.Close()
	}
	reference, err := idat.ReadModel(refSrc)
	if err != nil {
		return err
	}

	admixSrc, err := idat.OpenSeekableSource(mixAdmixtureFile)
	if err != nil {
		return err
	}
	if closer, ok := admixSrc.(*os.File); ok {
		defer closer.Close()
	}
	admixture, err := idat.ReadModel(admixSrc)
	if err != nil {
		return err
	}

	mixer := idat.NewMixer(reference)
	mixed, err := mixer.Mix(admixture, mixFraction)
	if err != nil {
		return err
	}

	logger.Info("mixed models", "reference", mixReferenceFile, "admixture", mixAdmixtureFile, "fraction", mixFraction, "out", mixOutFile)
	return idat.WriteFile(mixOutFile, mixed)
}
