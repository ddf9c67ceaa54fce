package presets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc"
	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc/units"

	"github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS equipment_weight (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	weight REAL NOT NULL,
	weight_unit TEXT NOT NULL,
	is_favorite INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS distance (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	distance REAL NOT NULL,
	distance_unit TEXT NOT NULL,
	is_favorite INTEGER NOT NULL DEFAULT 0
);
`

// SQLiteRepo is the local preset store used by the command line tool.
type SQLiteRepo struct {
	db *sql.DB
}

func NewSQLiteRepo(ctx context.Context, dbPath string) (*SQLiteRepo, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create preset tables: %w", err)
	}

	return &SQLiteRepo{db: db}, nil
}

func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepo) List(ctx context.Context, group units.Group) ([]sumcalc.Preset, error) {
	t, err := tableFor(group)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT id, name, %s, %s, is_favorite FROM %s ORDER BY is_favorite DESC, name`,
		t.magnitudeCol, t.unitCol, t.name,
	))
	if err != nil {
		return nil, fmt.Errorf("presets [query]: %w", err)
	}
	defer func() { _ = rows.Close() }()

	presets := []sumcalc.Preset{}
	for rows.Next() {
		p := sumcalc.Preset{Group: group}
		if err := rows.Scan(&p.ID, &p.Name, &p.Magnitude, &p.Unit, &p.Favorite); err != nil {
			return nil, fmt.Errorf("presets [rows scan]: %w", err)
		}
		presets = append(presets, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("presets [rows error]: %w", err)
	}

	return presets, nil
}

func (r *SQLiteRepo) Get(ctx context.Context, group units.Group, id int64) (sumcalc.Preset, error) {
	t, err := tableFor(group)
	if err != nil {
		return sumcalc.Preset{}, err
	}

	p := sumcalc.Preset{Group: group}
	err = r.db.QueryRowContext(ctx, fmt.Sprintf(
		`SELECT id, name, %s, %s, is_favorite FROM %s WHERE id = ?`,
		t.magnitudeCol, t.unitCol, t.name,
	), id).Scan(&p.ID, &p.Name, &p.Magnitude, &p.Unit, &p.Favorite)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sumcalc.Preset{}, ErrPresetNotFound
		}
		return sumcalc.Preset{}, fmt.Errorf("preset [query row]: %w", err)
	}

	return p, nil
}

func (r *SQLiteRepo) Add(ctx context.Context, preset sumcalc.Preset) (sumcalc.Preset, error) {
	if err := Validate(preset); err != nil {
		return sumcalc.Preset{}, err
	}
	t, _ := tableFor(preset.Group)

	res, err := r.db.ExecContext(ctx, fmt.Sprintf(
		`INSERT INTO %s (name, %s, %s, is_favorite) VALUES (?, ?, ?, ?)`,
		t.name, t.magnitudeCol, t.unitCol,
	), preset.Name, preset.Magnitude, preset.Unit, preset.Favorite)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return sumcalc.Preset{}, fmt.Errorf("%w: %s", ErrPresetExists, preset.Name)
		}
		return sumcalc.Preset{}, fmt.Errorf("add preset [exec]: %w", err)
	}

	preset.ID, err = res.LastInsertId()
	if err != nil {
		return sumcalc.Preset{}, fmt.Errorf("add preset [last insert id]: %w", err)
	}
	return preset, nil
}

func (r *SQLiteRepo) Delete(ctx context.Context, group units.Group, id int64) error {
	t, err := tableFor(group)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, t.name), id)
	if err != nil {
		return fmt.Errorf("delete preset [exec]: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete preset [rows affected]: %w", err)
	}
	if affected == 0 {
		return ErrPresetNotFound
	}
	return nil
}
