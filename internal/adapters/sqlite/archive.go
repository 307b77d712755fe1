package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"varia/internal/domain"
	"varia/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Archive implements ports.StudioArchive using SQLite. It keeps the latest
// full-graph export per studio plus a cold-storage table for nodes evicted
// by the prune policy, so a bounded in-memory graph never destroys work.
type Archive struct {
	db     *sql.DB
	dbPath string
}

// Ensure Archive implements StudioArchive
var _ ports.StudioArchive = (*Archive)(nil)

// NewArchive creates a new SQLite archive
func NewArchive() *Archive {
	return &Archive{}
}

// Open initializes the archive database. An empty path uses the XDG data
// directory.
func (a *Archive) Open(path string) error {
	if path == "" {
		path = databasePath()
	}
	a.dbPath = path

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(a.dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create archive directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", a.dbPath+"?_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	a.db = db

	// Performance pragmas + schema in single batch (reduces round-trips)
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA cache_size = -64000;
		PRAGMA temp_store = MEMORY;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS graphs (
			studio TEXT PRIMARY KEY,
			payload TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS pruned (
			studio TEXT NOT NULL,
			node_id TEXT NOT NULL,
			branch TEXT,
			payload TEXT NOT NULL,
			pruned_at INTEGER NOT NULL,
			PRIMARY KEY (studio, node_id)
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_pruned_studio ON pruned(studio, pruned_at);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	if err := a.updateMeta(); err != nil {
		db.Close()
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	return nil
}

// Close closes the database connection
func (a *Archive) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// databasePath returns the default path for the archive database
func databasePath() string {
	// XDG data directory
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "varia", "archive.db")
}

// updateMeta records the schema version
func (a *Archive) updateMeta() error {
	_, err := a.db.Exec(`
		INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?);
	`, schemaVersion)
	return err
}

// SaveGraph stores the full export for a studio, replacing prior state
func (a *Archive) SaveGraph(studio string, exp *domain.HistoryExport) error {
	payload, err := json.Marshal(exp)
	if err != nil {
		return fmt.Errorf("failed to serialize graph: %w", err)
	}
	_, err = a.db.Exec(`
		INSERT OR REPLACE INTO graphs (studio, payload, updated_at)
		VALUES (?, ?, ?)
	`, studio, string(payload), time.Now().Unix())
	return err
}

// LoadGraph retrieves the stored export, or (nil, nil) when the studio has
// no saved history
func (a *Archive) LoadGraph(studio string) (*domain.HistoryExport, error) {
	var payload string
	err := a.db.QueryRow(`
		SELECT payload FROM graphs WHERE studio = ?
	`, studio).Scan(&payload)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var exp domain.HistoryExport
	if err := json.Unmarshal([]byte(payload), &exp); err != nil {
		return nil, fmt.Errorf("failed to parse stored graph: %w", err)
	}
	return &exp, nil
}

// ArchivePruned moves evicted nodes into cold storage
func (a *Archive) ArchivePruned(studio string, nodes []*domain.HistoryNode) error {
	if len(nodes) == 0 {
		return nil
	}

	tx, err := a.db.Begin()
	if err != nil {
		return err
	}
	now := time.Now().Unix()
	for _, n := range nodes {
		payload, err := json.Marshal(n)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to serialize node %s: %w", n.ID, err)
		}
		if _, err := tx.Exec(`
			INSERT OR REPLACE INTO pruned (studio, node_id, branch, payload, pruned_at)
			VALUES (?, ?, ?, ?, ?)
		`, studio, n.ID, n.BranchName, string(payload), now); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// PrunedNodes lists cold-stored nodes for a studio, oldest first
func (a *Archive) PrunedNodes(studio string) ([]*domain.HistoryNode, error) {
	rows, err := a.db.Query(`
		SELECT payload FROM pruned WHERE studio = ? ORDER BY pruned_at, node_id
	`, studio)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nodes []*domain.HistoryNode
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var n domain.HistoryNode
		if err := json.Unmarshal([]byte(payload), &n); err != nil {
			return nil, fmt.Errorf("failed to parse stored node: %w", err)
		}
		nodes = append(nodes, &n)
	}

	return nodes, rows.Err()
}
