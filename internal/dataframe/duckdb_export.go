// Copyright (c) 2024 Neomantra Corp
//
// LoadProbeMatrix loads a ProbeMatrix into an in-memory DuckDB table so a
// caller can run SQL over probe intensities — the Go analogue of loading
// the source's pandas.DataFrame into an analysis notebook. Grounded on the
// teacher's DuckDB usage in internal/mcp_data/cache.go: plain
// database/sql against the blank-imported "duckdb" driver, never a
// bespoke native API.

package dataframe

import (
	"database/sql"
	"fmt"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/yhoogstrate/idat-tools"
)

// OpenProbeDB opens a fresh in-memory DuckDB database, hardened the same
// way the teacher's InitCache hardens its cache database: no extension
// autoloading, no remote filesystem access.
func OpenProbeDB() (*sql.DB, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory duckdb: %w", err)
	}
	for _, stmt := range []string{
		"SET autoinstall_known_extensions = false",
		"SET autoload_known_extensions = false",
		"SET allow_community_extensions = false",
		"SET disabled_filesystems = 'HTTPFileSystem'",
		"SET lock_configuration = true",
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("configuring duckdb (%s): %w", stmt, err)
		}
	}
	return db, nil
}

// probeTableDDL is the schema for the loaded probes table, one column per
// ProbeMatrix field.
const probeTableDDL = `
CREATE TABLE probes (
	probe_id       UINTEGER PRIMARY KEY,
	std_dev        USMALLINT NOT NULL,
	mean_intensity USMALLINT NOT NULL,
	n_beads        UTINYINT NOT NULL,
	mid_block      UINTEGER NOT NULL
)`

// LoadProbeMatrix creates a "probes" table on db and bulk-inserts every
// row of matrix into it inside a single transaction, so a caller can
// immediately run SQL like:
//
//	SELECT probe_id FROM probes WHERE mean_intensity > 20000 ORDER BY probe_id
func LoadProbeMatrix(db *sql.DB, matrix *idat.ProbeMatrix) error {
	if _, err := db.Exec(probeTableDDL); err != nil {
		return fmt.Errorf("creating probes table: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO probes (probe_id, std_dev, mean_intensity, n_beads, mid_block) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	ids := matrix.ProbeIDs()
	stdDevs := matrix.StdDevs()
	means := matrix.MeanIntensities()
	nBeads := matrix.NBeads()
	midBlock := matrix.MidBlock()
	for i := range ids {
		if _, err := stmt.Exec(ids[i], stdDevs[i], means[i], nBeads[i], midBlock[i]); err != nil {
			return fmt.Errorf("inserting probe row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing probe load: %w", err)
	}
	return nil
}
