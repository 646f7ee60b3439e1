package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	_ "modernc.org/sqlite"

	"github.com/rushteam/craftrec/core"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS user_clicks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL,
	product_id INTEGER NOT NULL,
	ts DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_user_clicks_user ON user_clicks (user_id, id);
CREATE TABLE IF NOT EXISTS users (
	user_id TEXT PRIMARY KEY,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS user_preferences (
	user_id TEXT PRIMARY KEY,
	preferred_city TEXT,
	preferred_state TEXT,
	preferred_tags TEXT,
	updated_at TEXT
);`

// SQLiteStore 是基于 SQLite（modernc.org/sqlite，纯 Go）的 Store。
// 点击表只追加；偏好表 INSERT OR REPLACE 整条替换。
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore 打开数据库并建表。path 为 ":memory:" 时使用内存库（单连接）。
// 文件库以 WAL 模式打开并设置 busy_timeout，允许多个连接并发读写。
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		path = "craftrec.db"
	}
	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite %s: %w", path, err)
	}
	if path == ":memory:" {
		// 每个连接都是独立的内存库
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping sqlite %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: init schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// sqliteDSN 把连接参数放进 DSN：PRAGMA 经 ExecContext 只作用于池中的一个连接，
// DSN 中的 _pragma 对每个新连接都会执行。写事务用 IMMEDIATE 提前拿写锁。
func sqliteDSN(path string) string {
	if path == ":memory:" {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_txlock=immediate"
}

func (s *SQLiteStore) Name() string { return "sqlite" }

func (s *SQLiteStore) AppendClick(ctx context.Context, userID string, productID int64) error {
	if err := checkUser(userID); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Commit 之后的 Rollback 无副作用

	if _, err := tx.ExecContext(ctx, `INSERT INTO user_clicks (user_id, product_id) VALUES (?, ?)`, userID, productID); err != nil {
		return fmt.Errorf("store: insert click: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO users (user_id) VALUES (?)`, userID); err != nil {
		return fmt.Errorf("store: register user: %w", err)
	}
	return tx.Commit()
}

func (s *SQLiteStore) RecentClicks(ctx context.Context, userID string, limit int) ([]int64, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT product_id FROM user_clicks WHERE user_id = ? ORDER BY id DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("store: query clicks: %w", err)
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("store: scan click: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) GetPreference(ctx context.Context, userID string) (*core.UserPreference, error) {
	var (
		city, state, tags, updated sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT preferred_city, preferred_state, preferred_tags, updated_at FROM user_preferences WHERE user_id = ?`,
		userID).Scan(&city, &state, &tags, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: query preference: %w", err)
	}

	pref := &core.UserPreference{UserID: userID, City: city.String, State: state.String}
	if tags.Valid && tags.String != "" {
		if err := json.Unmarshal([]byte(tags.String), &pref.Tags); err != nil {
			return nil, fmt.Errorf("store: decode tags: %w", err)
		}
	}
	if updated.Valid && updated.String != "" {
		if pref.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated.String); err != nil {
			return nil, fmt.Errorf("store: decode updated_at %q: %w", updated.String, err)
		}
	}
	return pref, nil
}

func (s *SQLiteStore) UpsertPreference(ctx context.Context, pref *core.UserPreference) error {
	if pref == nil {
		return core.ErrStoreUserRequired
	}
	if err := checkUser(pref.UserID); err != nil {
		return err
	}
	var tags sql.NullString
	if len(pref.Tags) > 0 {
		b, err := json.Marshal(pref.Tags)
		if err != nil {
			return fmt.Errorf("store: encode tags: %w", err)
		}
		tags = sql.NullString{String: string(b), Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO user_preferences (user_id, preferred_city, preferred_state, preferred_tags, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		pref.UserID, nullable(pref.City), nullable(pref.State), tags, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("store: upsert preference: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func nullable(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

var _ core.Store = (*SQLiteStore)(nil)
