package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/vnupipe/vnupipe/internal/domain"
)

const historyFile = ".vnupipe/history.db"

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	seq         INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id      TEXT NOT NULL UNIQUE,
	timestamp   TEXT NOT NULL,
	commit_hash TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL,
	files       INTEGER NOT NULL,
	failed      INTEGER NOT NULL,
	errors      INTEGER NOT NULL,
	infos       INTEGER NOT NULL
)`

// SQLiteHistory implements domain.RunHistory with a per-project SQLite file.
type SQLiteHistory struct{}

var _ domain.RunHistory = (*SQLiteHistory)(nil)

func New() *SQLiteHistory {
	return &SQLiteHistory{}
}

// Path returns the database location for projectPath.
func Path(projectPath string) string {
	return filepath.Join(projectPath, historyFile)
}

func (h *SQLiteHistory) Save(projectPath string, entry domain.RunEntry) error {
	db, err := open(Path(projectPath))
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.Exec(`INSERT INTO runs (run_id, timestamp, commit_hash, status, files, failed, errors, infos)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.RunID, entry.Timestamp, entry.CommitHash, entry.Status,
		entry.Files, entry.Failed, entry.Errors, entry.Infos,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Load returns up to limit of the most recent runs, oldest first.
// A limit <= 0 returns every run.
func (h *SQLiteHistory) Load(projectPath string, limit int) ([]domain.RunEntry, error) {
	fp := Path(projectPath)
	if _, err := os.Stat(fp); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	db, err := open(fp)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if limit <= 0 {
		limit = -1
	}

	rows, err := db.Query(`SELECT run_id, timestamp, commit_hash, status, files, failed, errors, infos
		FROM (SELECT * FROM runs ORDER BY seq DESC LIMIT ?) ORDER BY seq ASC`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var entries []domain.RunEntry
	for rows.Next() {
		var e domain.RunEntry
		if err := rows.Scan(&e.RunID, &e.Timestamp, &e.CommitHash, &e.Status, &e.Files, &e.Failed, &e.Errors, &e.Infos); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create runs table: %w", err)
	}

	return db, nil
}
