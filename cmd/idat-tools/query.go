// Copyright (c) 2024 Neomantra Corp

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yhoogstrate/idat-tools"
	"github.com/yhoogstrate/idat-tools/internal/dataframe"
)

var querySQL string

var queryCmd = &cobra.Command{
	Use:   "query file",
	Short: "Loads a file's probe matrix into an in-memory DuckDB table and runs a SQL query over it",
	Long:  "Loads a file's probe matrix into an in-memory DuckDB table and runs a SQL query over it",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		requireNoError(runQuery(args[0]))
	},
}

func runQuery(sourceFile string) error {
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

	db, err := dataframe.OpenProbeDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := dataframe.LoadProbeMatrix(db, model.Probes()); err != nil {
		return err
	}

	rows, err := db.Query(querySQL)
	if err != nil {
		return fmt.Errorf("running query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return err
	}
	fmt.Println(cols)

	values := make([]any, len(cols))
	pointers := make([]any, len(cols))
	for i := range values {
		pointers[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(pointers...); err != nil {
			return err
		}
		fmt.Println(values)
	}
	return rows.Err()
}
