package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps concurrent writers serialized on sqlite.
	sqlDB.SetMaxOpenConns(1)
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		wallet TEXT,
		is_active BOOLEAN NOT NULL DEFAULT 0,
		role TEXT NOT NULL DEFAULT 'USER',
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createSignalTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE signals (
		id TEXT PRIMARY KEY,
		provider_id TEXT NOT NULL,
		payload TEXT NOT NULL,
		is_spot BOOLEAN NOT NULL DEFAULT 1,
		status BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME
	);`)
}

func createPlacementTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE placements (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		signal_id TEXT NOT NULL,
		rating INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME
	);`)
}

func createUserTokenTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE user_tokens (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		token TEXT UNIQUE NOT NULL,
		purpose TEXT NOT NULL,
		expires_at DATETIME NOT NULL,
		created_at DATETIME
	);`)
}
