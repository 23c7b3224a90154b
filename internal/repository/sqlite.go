package repository

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/abrezinsky/luckydraw/internal/models"
)

// Repository stores the draw history and operator settings in SQLite.
type Repository struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath and applies migrations.
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// SQLite works best with single connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks if the database connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *Repository) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS draws (
			id TEXT PRIMARY KEY,
			category TEXT NOT NULL,
			source TEXT NOT NULL,
			destination TEXT,
			status TEXT NOT NULL,
			error TEXT,
			drawn_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_draws_category ON draws(category)`,
		`CREATE INDEX IF NOT EXISTS idx_draws_drawn_at ON draws(drawn_at)`,
	}

	for _, migration := range migrations {
		if _, err := r.db.Exec(migration); err != nil {
			return err
		}
	}
	return nil
}

// ==================== Draw Methods ====================

// SaveDraw appends a draw to the history
func (r *Repository) SaveDraw(ctx context.Context, d models.DrawRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO draws (id, category, source, destination, status, error, drawn_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, d.ID, d.Category, d.Source, nullString(d.Destination), d.Status, nullString(d.Error), d.DrawnAt.UTC())
	return err
}

// GetDraw returns one draw by id
func (r *Repository) GetDraw(ctx context.Context, id string) (*models.DrawRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, category, source, destination, status, error, drawn_at
		FROM draws WHERE id = ?
	`, id)

	d, err := scanDraw(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// ListDraws returns the newest draws first. A limit of zero or less
// returns every draw.
func (r *Repository) ListDraws(ctx context.Context, limit int) ([]models.DrawRecord, error) {
	query := `
		SELECT id, category, source, destination, status, error, drawn_at
		FROM draws ORDER BY drawn_at DESC, rowid DESC`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	draws := []models.DrawRecord{}
	for rows.Next() {
		d, err := scanDraw(rows)
		if err != nil {
			return nil, err
		}
		draws = append(draws, *d)
	}
	return draws, rows.Err()
}

// CountDraws returns the number of history rows per status
func (r *Repository) CountDraws(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM draws GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// ClearDraws deletes the whole history
func (r *Repository) ClearDraws(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM draws`)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDraw(row rowScanner) (*models.DrawRecord, error) {
	var d models.DrawRecord
	var dest, errText sql.NullString
	var drawnAt time.Time
	if err := row.Scan(&d.ID, &d.Category, &d.Source, &dest, &d.Status, &errText, &drawnAt); err != nil {
		return nil, err
	}
	d.Destination = dest.String
	d.Error = errText.String
	d.DrawnAt = drawnAt
	return &d, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// ==================== Settings Methods ====================

// GetSetting retrieves a setting value
func (r *Repository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	return value, err
}

// SetSetting updates a setting value
func (r *Repository) SetSetting(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value)
	return err
}
