package duckdb

import (
	"context"
	"database/sql/driver"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/haplotype"
)

// proteoformKey is the composite key for deduplicating proteoforms before
// writing.
type proteoformKey struct {
	accession, sequence string
}

// WriteProteoforms batch-inserts proteoform pairs using the Appender API.
// Duplicate (accession, sequence) entries are deduplicated before writing.
func (s *Store) WriteProteoforms(pairs []haplotype.Pair) error {
	if len(pairs) == 0 {
		return nil
	}

	seen := make(map[proteoformKey]bool, len(pairs))
	deduped := make([]haplotype.Pair, 0, len(pairs))
	for _, pr := range pairs {
		k := proteoformKey{pr.Protein.Accession, pr.Protein.Sequence}
		if !seen[k] {
			seen[k] = true
			deduped = append(deduped, pr)
		}
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "proteoforms")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, pr := range deduped {
		p := pr.Protein
		geneID := ""
		variantCount := int32(0)
		if t := pr.Transcript; t != nil {
			if t.Gene != nil {
				geneID = t.Gene.ID
			}
			variantCount = int32(len(t.VariantNotes))
		}
		if err := appender.AppendRow(
			p.Accession, geneID, p.Organism, p.Sequence, p.Annotation,
			variantCount, int32(len(p.Sequence)),
		); err != nil {
			return fmt.Errorf("append proteoform: %w", err)
		}
	}

	return appender.Flush()
}

// SearchByGene returns the proteoforms recorded for a gene.
func (s *Store) SearchByGene(geneID string) ([]*haplotype.Protein, error) {
	rows, err := s.db.Query(`SELECT accession, organism, sequence, annotation
		FROM proteoforms WHERE gene_id=? ORDER BY accession, sequence`, geneID)
	if err != nil {
		return nil, fmt.Errorf("query proteoforms: %w", err)
	}
	defer rows.Close()

	var proteins []*haplotype.Protein
	for rows.Next() {
		var p haplotype.Protein
		if err := rows.Scan(&p.Accession, &p.Organism, &p.Sequence, &p.Annotation); err != nil {
			return nil, fmt.Errorf("scan proteoform: %w", err)
		}
		proteins = append(proteins, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate proteoforms: %w", err)
	}
	return proteins, nil
}

// Count returns the number of stored proteoforms.
func (s *Store) Count() (int64, error) {
	var n int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM proteoforms").Scan(&n); err != nil {
		return 0, fmt.Errorf("count proteoforms: %w", err)
	}
	return n, nil
}

// Clear removes all stored proteoforms.
func (s *Store) Clear() error {
	_, err := s.db.Exec("DELETE FROM proteoforms")
	return err
}
