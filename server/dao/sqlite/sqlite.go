// Package sqlite is a modernc.org/sqlite-backed dao.RunRepository, grounded
// on the teacher's own dao/sqlite package: REZI binary encoding for the
// slice-valued columns (server/dao/sqlite/sqlite.go's convertToDB_*/
// convertFromDB_* pattern), plain database/sql otherwise.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dekarrin/rezi"
	_ "modernc.org/sqlite"

	"github.com/dekarrin/fixgo/internal/fixid"
	"github.com/dekarrin/fixgo/server/dao"
)

const runsTableSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT NOT NULL PRIMARY KEY,
	lang TEXT NOT NULL,
	max_len INTEGER NOT NULL,
	found_length INTEGER NOT NULL,
	originals BLOB NOT NULL,
	outputs BLOB NOT NULL,
	submitted INTEGER NOT NULL,
	err TEXT NOT NULL
);
`

type RunRepository struct {
	db *sql.DB
}

// NewRunRepository opens (creating if needed) a fixgo.db file under
// dataDir and ensures the runs table exists.
func NewRunRepository(dataDir string) (*RunRepository, error) {
	dbPath := filepath.Join(dataDir, "fixgo.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if _, err := db.Exec(runsTableSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create runs table: %w", err)
	}
	return &RunRepository{db: db}, nil
}

func (r *RunRepository) Create(ctx context.Context, run dao.Run) (dao.Run, error) {
	var zero fixid.ID
	if run.ID == zero {
		run.ID = fixid.New()
	}
	if run.Submitted.IsZero() {
		run.Submitted = time.Now()
	}

	origData := rezi.EncBinary(run.Originals)
	outData := rezi.EncBinary(run.Outputs)

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO runs (id, lang, max_len, found_length, originals, outputs, submitted, err) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID.String(), run.Lang, run.MaxLen, run.FoundLength, origData, outData, run.Submitted.Unix(), run.Err,
	)
	if err != nil {
		return dao.Run{}, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

func (r *RunRepository) GetByID(ctx context.Context, id fixid.ID) (dao.Run, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, lang, max_len, found_length, originals, outputs, submitted, err FROM runs WHERE id = ?`,
		id.String(),
	)
	return scanRun(row)
}

func (r *RunRepository) List(ctx context.Context) ([]dao.Run, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, lang, max_len, found_length, originals, outputs, submitted, err FROM runs ORDER BY submitted DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var all []dao.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		all = append(all, run)
	}
	return all, rows.Err()
}

func (r *RunRepository) Close() error {
	return r.db.Close()
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row scanner) (dao.Run, error) {
	var (
		idStr     string
		submitted int64
		origData  []byte
		outData   []byte
		run       dao.Run
	)

	err := row.Scan(&idStr, &run.Lang, &run.MaxLen, &run.FoundLength, &origData, &outData, &submitted, &run.Err)
	if err == sql.ErrNoRows {
		return dao.Run{}, dao.ErrNotFound
	}
	if err != nil {
		return dao.Run{}, fmt.Errorf("scan run: %w", err)
	}

	id, err := fixid.Parse(idStr)
	if err != nil {
		return dao.Run{}, fmt.Errorf("parse run id: %w", err)
	}
	run.ID = id
	run.Submitted = time.Unix(submitted, 0)

	if _, err := rezi.DecBinary(origData, &run.Originals); err != nil {
		return dao.Run{}, fmt.Errorf("decode originals: %w", err)
	}
	if _, err := rezi.DecBinary(outData, &run.Outputs); err != nil {
		return dao.Run{}, fmt.Errorf("decode outputs: %w", err)
	}
	return run, nil
}
