package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/papadavis47/mountains-tui/internal/daylog"
	"github.com/papadavis47/mountains-tui/internal/storage"
)

// Store implements storage.DayStore using one Markdown file per day with
// YAML front-matter.
type Store struct {
	baseDir string // e.g. ~/.mountains/days/
}

// New creates a new Markdown file storage backend.
func New(dataDir string) (*Store, error) {
	daysDir := filepath.Join(dataDir, "days")
	if err := os.MkdirAll(daysDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating days directory: %v", storage.ErrStorage, err)
	}
	return &Store{baseDir: daysDir}, nil
}

// Close is a no-op for the Markdown backend.
func (s *Store) Close() error {
	return nil
}

func (s *Store) dayPath(date time.Time) string {
	return filepath.Join(s.baseDir, date.Format("2006"), date.Format("01"), date.Format("02")+".md")
}

func (s *Store) marshal(d daylog.DailyEntry) []byte {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "date: %q\n", d.Key())
	fmt.Fprintf(&b, "created_at: %q\n", d.CreatedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "updated_at: %q\n", d.UpdatedAt.UTC().Format(time.RFC3339))
	if d.Weight != nil {
		fmt.Fprintf(&b, "weight: %s\n", formatFloat(*d.Weight))
	}
	if d.Waist != nil {
		fmt.Fprintf(&b, "waist: %s\n", formatFloat(*d.Waist))
	}
	if d.Miles != nil {
		fmt.Fprintf(&b, "miles: %s\n", formatFloat(*d.Miles))
	}
	if d.Elevation != nil {
		fmt.Fprintf(&b, "elevation: %d\n", *d.Elevation)
	}
	if len(d.Food) > 0 {
		b.WriteString("food:\n")
		for _, f := range d.Food {
			fmt.Fprintf(&b, "  - id: %q\n", f.ID)
			fmt.Fprintf(&b, "    name: %s\n", strconv.Quote(f.Name))
		}
	}
	if len(d.Sokay) > 0 {
		b.WriteString("sokay:\n")
		for _, it := range d.Sokay {
			fmt.Fprintf(&b, "  - id: %q\n", it.ID)
			fmt.Fprintf(&b, "    name: %s\n", strconv.Quote(it.Name))
		}
	}
	if d.StrengthMobility != nil {
		fmt.Fprintf(&b, "strength_mobility: %s\n", strconv.Quote(*d.StrengthMobility))
	}
	if d.Notes != nil {
		fmt.Fprintf(&b, "notes: %s\n", strconv.Quote(*d.Notes))
	}
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "# %s\n", d.Date.Format("Monday, January 2, 2006"))
	return []byte(b.String())
}

type fmItem struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type frontMatter struct {
	Date             string   `yaml:"date"`
	CreatedAt        string   `yaml:"created_at"`
	UpdatedAt        string   `yaml:"updated_at"`
	Weight           *float64 `yaml:"weight"`
	Waist            *float64 `yaml:"waist"`
	Miles            *float64 `yaml:"miles"`
	Elevation        *int     `yaml:"elevation"`
	Food             []fmItem `yaml:"food"`
	Sokay            []fmItem `yaml:"sokay"`
	StrengthMobility *string  `yaml:"strength_mobility"`
	Notes            *string  `yaml:"notes"`
}

func (s *Store) unmarshal(data []byte) (daylog.DailyEntry, error) {
	var fm frontMatter
	if _, err := frontmatter.Parse(strings.NewReader(string(data)), &fm); err != nil {
		return daylog.DailyEntry{}, fmt.Errorf("%w: parsing front-matter: %v", storage.ErrStorage, err)
	}

	date, err := daylog.ParseKey(fm.Date)
	if err != nil {
		return daylog.DailyEntry{}, fmt.Errorf("%w: parsing date: %v", storage.ErrStorage, err)
	}
	createdAt, err := time.Parse(time.RFC3339, fm.CreatedAt)
	if err != nil {
		return daylog.DailyEntry{}, fmt.Errorf("%w: parsing created_at: %v", storage.ErrStorage, err)
	}
	updatedAt, err := time.Parse(time.RFC3339, fm.UpdatedAt)
	if err != nil {
		return daylog.DailyEntry{}, fmt.Errorf("%w: parsing updated_at: %v", storage.ErrStorage, err)
	}

	d := daylog.DailyEntry{
		Date:             date,
		Weight:           fm.Weight,
		Waist:            fm.Waist,
		Miles:            fm.Miles,
		Elevation:        fm.Elevation,
		StrengthMobility: fm.StrengthMobility,
		Notes:            fm.Notes,
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}
	for _, f := range fm.Food {
		d.Food = append(d.Food, daylog.FoodItem{ID: f.ID, Name: f.Name})
	}
	for _, it := range fm.Sokay {
		d.Sokay = append(d.Sokay, daylog.SokayItem{ID: it.ID, Name: it.Name})
	}
	return d, nil
}

// atomicWrite writes data to a temp file then renames it to the target path.
func (s *Store) atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: creating directory: %v", storage.ErrStorage, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", storage.ErrStorage, err)
	}
	tmpName := tmp.Name()

	// Lock the temp file during write
	if err := syscall.Flock(int(tmp.Fd()), syscall.LOCK_EX); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: acquiring lock: %v", storage.ErrStorage, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing temp file: %v", storage.ErrStorage, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: closing temp file: %v", storage.ErrStorage, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: renaming file: %v", storage.ErrStorage, err)
	}

	return nil
}

// UpsertDay writes the day file, replacing any previous version.
func (s *Store) UpsertDay(ctx context.Context, d daylog.DailyEntry) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrStorage, err)
	}
	return s.atomicWrite(s.dayPath(d.Date), s.marshal(d))
}

// DeleteDay removes the day file. Deleting an absent day is a no-op.
func (s *Store) DeleteDay(ctx context.Context, date time.Time) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrStorage, err)
	}
	if err := os.Remove(s.dayPath(date)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: removing day file: %v", storage.ErrStorage, err)
	}
	return nil
}

// GetDay reads one day file.
func (s *Store) GetDay(ctx context.Context, date time.Time) (daylog.DailyEntry, error) {
	data, err := os.ReadFile(s.dayPath(date))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return daylog.DailyEntry{}, storage.ErrNotFound
		}
		return daylog.DailyEntry{}, fmt.Errorf("%w: reading file: %v", storage.ErrStorage, err)
	}
	return s.unmarshal(data)
}

// LoadAllDays scans the directory tree and returns every day, newest first.
// Unreadable or malformed files are skipped.
func (s *Store) LoadAllDays(ctx context.Context) ([]daylog.DailyEntry, error) {
	days := []daylog.DailyEntry{}

	err := filepath.WalkDir(s.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") || strings.HasPrefix(d.Name(), ".tmp-") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil // skip unreadable files
		}

		day, err := s.unmarshal(data)
		if err != nil {
			return nil // skip malformed files
		}
		days = append(days, day)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: listing days: %v", storage.ErrStorage, err)
	}

	daylog.SortNewestFirst(days)
	return days, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
