// Package store persists a booking board in SQLite and keeps a log of the
// changes between saves.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"flightline/board"
	"flightline/internal/logging"
	"flightline/timeline"
)

type DB struct {
	sql *sql.DB
}

// Change is one difference between the stored board and a saved one.
type Change struct {
	OccurredAt time.Time
	ItemID     string
	GroupID    string
	RowID      string
	Span       timeline.Span
	ChangeType string // added | moved | resized | removed
}

func Open(path string) (*DB, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS board_groups (
  id        TEXT PRIMARY KEY,
  name      TEXT,
  position  INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS flights (
  id        TEXT PRIMARY KEY,
  group_id  TEXT NOT NULL REFERENCES board_groups(id),
  name      TEXT,
  position  INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS items (
  id        TEXT PRIMARY KEY,
  group_id  TEXT NOT NULL,
  row_id    TEXT NOT NULL REFERENCES flights(id),
  start_ms  INTEGER NOT NULL,
  end_ms    INTEGER NOT NULL CHECK (end_ms >= start_ms),
  position  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_items_row ON items(row_id, position);
CREATE TABLE IF NOT EXISTS item_changes (
  id          INTEGER PRIMARY KEY,
  occurred_ms INTEGER NOT NULL,
  item_id     TEXT NOT NULL,
  group_id    TEXT NOT NULL,
  row_id      TEXT NOT NULL,
  start_ms    INTEGER NOT NULL,
  end_ms      INTEGER NOT NULL,
  change_type TEXT NOT NULL CHECK (change_type IN ('added','moved','resized','removed'))
);
CREATE INDEX IF NOT EXISTS idx_changes_time ON item_changes(occurred_ms);
    `); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &DB{sql: db}, nil
}

func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	return d.sql.Close()
}

// SaveBoard replaces the stored board with b in one transaction and records
// how every item changed since the previous save. Preview items of
// unfinished create gestures are not stored.
func (d *DB) SaveBoard(ctx context.Context, b *board.Board) ([]Change, error) {
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("refusing to save invalid board: %w", err)
	}
	now := time.Now().UTC()

	tx, err := d.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	previous, err := loadItems(ctx, tx)
	if err != nil {
		return nil, err
	}

	for _, stmt := range []string{"DELETE FROM items", "DELETE FROM flights", "DELETE FROM board_groups"} {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return nil, err
		}
	}

	var changes []Change
	seen := make(map[string]bool)
	for gi, g := range b.Groups {
		if _, err = tx.ExecContext(ctx, `INSERT INTO board_groups(id, name, position) VALUES(?,?,?)`, g.ID, nullIfEmpty(g.Name), gi); err != nil {
			return nil, err
		}
		for ri, r := range g.Rows {
			if _, err = tx.ExecContext(ctx, `INSERT INTO flights(id, group_id, name, position) VALUES(?,?,?,?)`, r.ID, g.ID, nullIfEmpty(r.Name), ri); err != nil {
				return nil, err
			}
			for ii, it := range r.Items {
				if it.Creating {
					continue
				}
				if _, err = tx.ExecContext(ctx, `INSERT INTO items(id, group_id, row_id, start_ms, end_ms, position) VALUES(?,?,?,?,?,?)`, it.ID, g.ID, r.ID, it.Span.Start, it.Span.End, ii); err != nil {
					return nil, err
				}
				seen[it.ID] = true

				changeType := classify(previous[it.ID], it)
				if changeType != "" {
					changes = append(changes, Change{OccurredAt: now, ItemID: it.ID, GroupID: g.ID, RowID: r.ID, Span: it.Span, ChangeType: changeType})
				}
			}
		}
	}
	for id, old := range previous {
		if !seen[id] {
			changes = append(changes, Change{OccurredAt: now, ItemID: id, GroupID: old.GroupID, RowID: old.RowID, Span: old.Span, ChangeType: "removed"})
		}
	}

	for _, c := range changes {
		if _, err = tx.ExecContext(ctx, `INSERT INTO item_changes(occurred_ms, item_id, group_id, row_id, start_ms, end_ms, change_type) VALUES(?,?,?,?,?,?,?)`,
			c.OccurredAt.UnixMilli(), c.ItemID, c.GroupID, c.RowID, c.Span.Start, c.Span.End, c.ChangeType); err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	logging.Log.Debugf("Saved board: %d groups, %d changes", len(b.Groups), len(changes))
	return changes, nil
}

// classify names the change from the stored item old (zero when absent) to
// it. An unchanged item yields "".
func classify(old board.Item, it board.Item) string {
	switch {
	case old.ID == "":
		return "added"
	case old.Span == it.Span && old.RowID == it.RowID:
		return ""
	case old.Span.Duration() == it.Span.Duration():
		return "moved"
	default:
		return "resized"
	}
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func loadItems(ctx context.Context, q queryer) (map[string]board.Item, error) {
	rows, err := q.QueryContext(ctx, "SELECT id, group_id, row_id, start_ms, end_ms FROM items")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[string]board.Item)
	for rows.Next() {
		var it board.Item
		if err := rows.Scan(&it.ID, &it.GroupID, &it.RowID, &it.Span.Start, &it.Span.End); err != nil {
			return nil, err
		}
		items[it.ID] = it
	}
	return items, rows.Err()
}

// LoadBoard rebuilds the stored board, keeping group, row and item order.
// An empty database yields an empty board.
func (d *DB) LoadBoard(ctx context.Context) (*board.Board, error) {
	b := board.New()
	groups, err := loadGroups(ctx, d.sql)
	if err != nil {
		return nil, err
	}
	b.Groups = groups

	for gi := range b.Groups {
		g := &b.Groups[gi]
		if g.Rows, err = loadRows(ctx, d.sql, g.ID); err != nil {
			return nil, err
		}
		for ri := range g.Rows {
			r := &g.Rows[ri]
			if r.Items, err = loadRowItems(ctx, d.sql, g.ID, r.ID); err != nil {
				return nil, err
			}
		}
	}
	return b, nil
}

func loadGroups(ctx context.Context, q queryer) ([]board.Group, error) {
	rows, err := q.QueryContext(ctx, "SELECT id, name FROM board_groups ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []board.Group
	for rows.Next() {
		var (
			g    board.Group
			name sql.NullString
		)
		if err := rows.Scan(&g.ID, &name); err != nil {
			return nil, err
		}
		g.Name = name.String
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading groups: %w", err)
	}
	return groups, nil
}

func loadRows(ctx context.Context, q queryer, groupID string) ([]board.Row, error) {
	rows, err := q.QueryContext(ctx, "SELECT id, name FROM flights WHERE group_id = ? ORDER BY position", groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []board.Row
	for rows.Next() {
		var (
			r    board.Row
			name sql.NullString
		)
		if err := rows.Scan(&r.ID, &name); err != nil {
			return nil, err
		}
		r.GroupID = groupID
		r.Name = name.String
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading rows of group %s: %w", groupID, err)
	}
	return out, nil
}

func loadRowItems(ctx context.Context, q queryer, groupID, rowID string) ([]board.Item, error) {
	rows, err := q.QueryContext(ctx, "SELECT id, start_ms, end_ms FROM items WHERE row_id = ? ORDER BY position", rowID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []board.Item
	for rows.Next() {
		it := board.Item{GroupID: groupID, RowID: rowID}
		if err := rows.Scan(&it.ID, &it.Span.Start, &it.Span.End); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading items of row %s: %w", rowID, err)
	}
	return items, nil
}

// ListRecentChanges returns the most recent N changes, newest first.
func (d *DB) ListRecentChanges(ctx context.Context, limit int) ([]Change, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.sql.QueryContext(ctx, `SELECT occurred_ms, item_id, group_id, row_id, start_ms, end_ms, change_type FROM item_changes ORDER BY occurred_ms DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Change
	for rows.Next() {
		var (
			c          Change
			occurredMs int64
		)
		if err := rows.Scan(&occurredMs, &c.ItemID, &c.GroupID, &c.RowID, &c.Span.Start, &c.Span.End, &c.ChangeType); err != nil {
			return nil, err
		}
		c.OccurredAt = time.UnixMilli(occurredMs).UTC()
		out = append(out, c)
	}
	return out, rows.Err()
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
