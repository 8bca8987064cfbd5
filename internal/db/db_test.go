package db

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestSetLogger(t *testing.T) {
	SetLogger(zerolog.New(os.Stdout).Level(zerolog.ErrorLevel))
}

func TestNewSQLite(t *testing.T) {
	db := NewSQLite(MemoryPath)
	if db == nil {
		t.Fatal("Expected non-nil SQLite instance")
	}
	if db.conn != nil {
		t.Error("Expected connection to be nil initially")
	}
}

func TestSQLiteBasicOperations(t *testing.T) {
	ctx := context.Background()
	db := NewSQLite(MemoryPath)
	defer db.Close()

	t.Run("InitDB creates the state table", func(t *testing.T) {
		if err := db.InitDB(); err != nil {
			t.Fatalf("Failed to initialize database: %v", err)
		}
		if err := db.Get().Ping(); err != nil {
			t.Errorf("Failed to ping database: %v", err)
		}

		rows, err := db.Query(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name=?", "state")
		if err != nil {
			t.Fatalf("Failed to query for table: %v", err)
		}
		defer rows.Close()
		if !rows.Next() {
			t.Error("Expected table state to exist")
		}
	})

	t.Run("Exec and Query round trip", func(t *testing.T) {
		_, err := db.Exec(ctx, `INSERT INTO state (key, value, modified_at) VALUES (?, ?, CURRENT_TIMESTAMP)`, "k", []byte("v"))
		if err != nil {
			t.Fatalf("Failed to insert: %v", err)
		}

		rows, err := db.Query(ctx, `SELECT value FROM state WHERE key = ?`, "k")
		if err != nil {
			t.Fatalf("Failed to query: %v", err)
		}
		defer rows.Close()

		if !rows.Next() {
			t.Fatal("Expected a row")
		}
		var value []byte
		if err := rows.Scan(&value); err != nil {
			t.Fatalf("Failed to scan: %v", err)
		}
		if string(value) != "v" {
			t.Errorf("Expected value 'v', got %q", value)
		}
	})

	t.Run("InitDB is idempotent", func(t *testing.T) {
		other := NewSQLite(MemoryPath)
		defer other.Close()
		if err := other.InitDB(); err != nil {
			t.Fatal(err)
		}
		if _, err := other.Get().Exec(schema); err != nil {
			t.Errorf("Expected schema to be re-appliable, got %v", err)
		}
	})
}

func TestSQLiteErrorHandling(t *testing.T) {
	ctx := context.Background()

	t.Run("Operations on uninitialized database", func(t *testing.T) {
		db := NewSQLite(MemoryPath)
		if _, err := db.Query(ctx, "SELECT 1"); !errors.Is(err, ErrNotInitialized) {
			t.Errorf("Expected ErrNotInitialized from Query, got %v", err)
		}
		if _, err := db.Exec(ctx, "SELECT 1"); !errors.Is(err, ErrNotInitialized) {
			t.Errorf("Expected ErrNotInitialized from Exec, got %v", err)
		}
	})

	t.Run("Invalid SQL", func(t *testing.T) {
		db := NewSQLite(MemoryPath)
		defer db.Close()
		if err := db.InitDB(); err != nil {
			t.Fatal(err)
		}
		if _, err := db.Exec(ctx, "NOT VALID SQL"); err == nil {
			t.Error("Expected error for invalid SQL")
		}
	})
}

func TestSQLiteClose(t *testing.T) {
	db := NewSQLite(MemoryPath)
	if err := db.Close(); err != nil {
		t.Errorf("Expected closing an uninitialized database to succeed, got %v", err)
	}
	if err := db.InitDB(); err != nil {
		t.Fatal(err)
	}
	if err := db.Close(); err != nil {
		t.Errorf("Expected close to succeed, got %v", err)
	}
	if err := db.Close(); err != nil {
		t.Errorf("Expected second close to be a no-op, got %v", err)
	}
	if db.Get() != nil {
		t.Error("Expected nil connection after close")
	}
}

func TestDatabaseCreationWithCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "folio.db")
	db := NewSQLite(path)
	defer db.Close()

	if err := db.InitDB(); err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected database file to be created: %v", err)
	}
}

func TestDBInterface(t *testing.T) {
	var _ DB = (*SQLite)(nil)
}
