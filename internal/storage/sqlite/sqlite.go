package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/papadavis47/mountains-tui/internal/daylog"
	"github.com/papadavis47/mountains-tui/internal/storage"
	_ "github.com/tursodatabase/go-libsql"
)

// DBFile is the database file name inside the data directory.
const DBFile = "mountains.db"

// Store implements storage.DayStore using SQLite via Turso/libSQL.
type Store struct {
	db *sql.DB
}

// New creates a new SQLite storage backend.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %v", storage.ErrStorage, err)
	}

	dbPath := filepath.Join(dataDir, DBFile)
	db, err := sql.Open("libsql", "file:"+dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", storage.ErrStorage, err)
	}

	// Enable WAL mode
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: enabling WAL mode: %v", storage.ErrStorage, err)
	}

	s, err := NewWithDB(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewWithDB wraps an already opened libSQL database, such as an embedded
// replica, creating the schema if needed. The Store takes ownership of db.
func NewWithDB(db *sql.DB) (*Store, error) {
	if err := createSchema(db); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS daily_logs (
			date              TEXT PRIMARY KEY,
			weight            REAL,
			waist             REAL,
			miles             REAL,
			elevation         INTEGER,
			strength_mobility TEXT,
			notes             TEXT,
			created_at        TEXT NOT NULL,
			updated_at        TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS food_entries (
			id       TEXT NOT NULL,
			date     TEXT NOT NULL,
			position INTEGER NOT NULL,
			name     TEXT NOT NULL,
			PRIMARY KEY (date, id)
		);
		CREATE TABLE IF NOT EXISTS sokay_entries (
			id       TEXT NOT NULL,
			date     TEXT NOT NULL,
			position INTEGER NOT NULL,
			name     TEXT NOT NULL,
			PRIMARY KEY (date, id)
		);
		CREATE INDEX IF NOT EXISTS idx_food_entries_date ON food_entries(date, position);
		CREATE INDEX IF NOT EXISTS idx_sokay_entries_date ON sokay_entries(date, position);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("%w: creating schema: %v", storage.ErrStorage, err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// UpsertDay replaces the day row and its items in one transaction.
func (s *Store) UpsertDay(ctx context.Context, d daylog.DailyEntry) error {
	key := d.Key()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %v", storage.ErrStorage, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO daily_logs (date, weight, waist, miles, elevation, strength_mobility, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			weight = excluded.weight,
			waist = excluded.waist,
			miles = excluded.miles,
			elevation = excluded.elevation,
			strength_mobility = excluded.strength_mobility,
			notes = excluded.notes,
			updated_at = excluded.updated_at`,
		key,
		nullFloat(d.Weight),
		nullFloat(d.Waist),
		nullFloat(d.Miles),
		nullInt(d.Elevation),
		nullString(d.StrengthMobility),
		nullString(d.Notes),
		d.CreatedAt.UTC().Format(time.RFC3339),
		d.UpdatedAt.UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("%w: upserting day %s: %v", storage.ErrStorage, key, err)
	}

	if err := deleteItems(ctx, tx, key); err != nil {
		return err
	}
	for i, f := range d.Food {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO food_entries (id, date, position, name) VALUES (?, ?, ?, ?)",
			f.ID, key, i, f.Name,
		); err != nil {
			return fmt.Errorf("%w: inserting food item: %v", storage.ErrStorage, err)
		}
	}
	for i, it := range d.Sokay {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO sokay_entries (id, date, position, name) VALUES (?, ?, ?, ?)",
			it.ID, key, i, it.Name,
		); err != nil {
			return fmt.Errorf("%w: inserting sokay item: %v", storage.ErrStorage, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing: %v", storage.ErrStorage, err)
	}
	return nil
}

func deleteItems(ctx context.Context, tx *sql.Tx, key string) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM food_entries WHERE date = ?", key); err != nil {
		return fmt.Errorf("%w: deleting food items: %v", storage.ErrStorage, err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM sokay_entries WHERE date = ?", key); err != nil {
		return fmt.Errorf("%w: deleting sokay items: %v", storage.ErrStorage, err)
	}
	return nil
}

// DeleteDay removes a day and its items. Deleting an absent day is a no-op.
func (s *Store) DeleteDay(ctx context.Context, date time.Time) error {
	key := daylog.KeyFor(date)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %v", storage.ErrStorage, err)
	}
	defer tx.Rollback()

	if err := deleteItems(ctx, tx, key); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM daily_logs WHERE date = ?", key); err != nil {
		return fmt.Errorf("%w: deleting day %s: %v", storage.ErrStorage, key, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing: %v", storage.ErrStorage, err)
	}
	return nil
}

const dayColumns = "date, weight, waist, miles, elevation, strength_mobility, notes, created_at, updated_at"

type scanner interface {
	Scan(dest ...any) error
}

func scanDay(row scanner) (daylog.DailyEntry, error) {
	var (
		key, createdStr, updatedStr string
		weight, waist, miles        sql.NullFloat64
		elevation                   sql.NullInt64
		strength, notes             sql.NullString
	)
	if err := row.Scan(&key, &weight, &waist, &miles, &elevation, &strength, &notes, &createdStr, &updatedStr); err != nil {
		return daylog.DailyEntry{}, err
	}

	date, err := daylog.ParseKey(key)
	if err != nil {
		return daylog.DailyEntry{}, fmt.Errorf("%w: parsing date %q: %v", storage.ErrStorage, key, err)
	}

	d := daylog.DailyEntry{
		Date:             date,
		Weight:           floatPtr(weight),
		Waist:            floatPtr(waist),
		Miles:            floatPtr(miles),
		Elevation:        intPtr(elevation),
		StrengthMobility: stringPtr(strength),
		Notes:            stringPtr(notes),
	}
	d.CreatedAt, err = time.Parse(time.RFC3339, createdStr)
	if err != nil {
		return daylog.DailyEntry{}, fmt.Errorf("%w: parsing created_at: %v", storage.ErrStorage, err)
	}
	d.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr)
	if err != nil {
		return daylog.DailyEntry{}, fmt.Errorf("%w: parsing updated_at: %v", storage.ErrStorage, err)
	}
	return d, nil
}

// GetDay retrieves one day with its items.
func (s *Store) GetDay(ctx context.Context, date time.Time) (daylog.DailyEntry, error) {
	key := daylog.KeyFor(date)
	row := s.db.QueryRowContext(ctx, "SELECT "+dayColumns+" FROM daily_logs WHERE date = ?", key)

	d, err := scanDay(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return daylog.DailyEntry{}, storage.ErrNotFound
		}
		if errors.Is(err, storage.ErrStorage) {
			return daylog.DailyEntry{}, err
		}
		return daylog.DailyEntry{}, fmt.Errorf("%w: querying day: %v", storage.ErrStorage, err)
	}

	days := map[string]*daylog.DailyEntry{key: &d}
	if err := s.loadItems(ctx, days, "WHERE date = ?", key); err != nil {
		return daylog.DailyEntry{}, err
	}
	return d, nil
}

// LoadAllDays returns every stored day, newest first.
func (s *Store) LoadAllDays(ctx context.Context) ([]daylog.DailyEntry, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+dayColumns+" FROM daily_logs ORDER BY date DESC")
	if err != nil {
		return nil, fmt.Errorf("%w: listing days: %v", storage.ErrStorage, err)
	}
	defer rows.Close()

	var days []daylog.DailyEntry
	for rows.Next() {
		d, err := scanDay(rows)
		if err != nil {
			if errors.Is(err, storage.ErrStorage) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: scanning row: %v", storage.ErrStorage, err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating days: %v", storage.ErrStorage, err)
	}

	byKey := make(map[string]*daylog.DailyEntry, len(days))
	for i := range days {
		byKey[days[i].Key()] = &days[i]
	}
	if err := s.loadItems(ctx, byKey, ""); err != nil {
		return nil, err
	}

	if days == nil {
		days = []daylog.DailyEntry{}
	}
	return days, nil
}

// loadItems attaches food and sokay items to the days in byKey, in position order.
func (s *Store) loadItems(ctx context.Context, byKey map[string]*daylog.DailyEntry, where string, args ...any) error {
	for _, table := range []string{"food_entries", "sokay_entries"} {
		rows, err := s.db.QueryContext(ctx,
			"SELECT date, id, name FROM "+table+" "+where+" ORDER BY date, position", args...)
		if err != nil {
			return fmt.Errorf("%w: querying %s: %v", storage.ErrStorage, table, err)
		}
		for rows.Next() {
			var key, id, name string
			if err := rows.Scan(&key, &id, &name); err != nil {
				rows.Close()
				return fmt.Errorf("%w: scanning %s: %v", storage.ErrStorage, table, err)
			}
			d, ok := byKey[key]
			if !ok {
				continue
			}
			if table == "food_entries" {
				d.Food = append(d.Food, daylog.FoodItem{ID: id, Name: name})
			} else {
				d.Sokay = append(d.Sokay, daylog.SokayItem{ID: id, Name: name})
			}
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return fmt.Errorf("%w: iterating %s: %v", storage.ErrStorage, table, err)
		}
	}
	return nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
