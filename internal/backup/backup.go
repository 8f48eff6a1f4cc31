// Package backup writes the human-readable per-day backup files
// (mtslog-MM.DD.YYYY.md) that mirror the durable store.
package backup

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/papadavis47/mountains-tui/internal/daylog"
)

// ErrBackup is wrapped by every error returned from this package.
var ErrBackup = errors.New("backup error")

// Dir writes backup files into one directory.
type Dir struct {
	path string
}

// New creates the backup directory if needed.
func New(dir string) (*Dir, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating backup directory: %v", ErrBackup, err)
	}
	return &Dir{path: dir}, nil
}

// FileName returns the backup file name for date.
func FileName(date time.Time) string {
	return "mtslog-" + date.Format("01.02.2006") + ".md"
}

// Path returns the backup file path for date.
func (d *Dir) Path(date time.Time) string {
	return filepath.Join(d.path, FileName(date))
}

// Write renders the day and atomically replaces its backup file.
func (d *Dir) Write(day daylog.DailyEntry) error {
	return d.atomicWrite(d.Path(day.Date), []byte(Render(day)))
}

// Remove deletes the backup file for date. A missing file is not an error.
func (d *Dir) Remove(date time.Time) error {
	if err := os.Remove(d.Path(date)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: removing %s: %v", ErrBackup, FileName(date), err)
	}
	return nil
}

// Read returns the backup text for date.
func (d *Dir) Read(date time.Time) (string, error) {
	data, err := os.ReadFile(d.Path(date))
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %v", ErrBackup, FileName(date), err)
	}
	return string(data), nil
}

// Render produces the canonical backup text for a day. Sections appear in a
// fixed order and are omitted when empty.
func Render(day daylog.DailyEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Mountains Training Log - %s\n\n", day.Date.Format("January 02, 2006"))

	if day.Weight != nil || day.Waist != nil {
		b.WriteString("## Measurements\n")
		if day.Weight != nil {
			fmt.Fprintf(&b, "- **Weight:** %s lbs\n", FormatNumber(*day.Weight))
		}
		if day.Waist != nil {
			fmt.Fprintf(&b, "- **Waist:** %s inches\n", FormatNumber(*day.Waist))
		}
		b.WriteString("\n")
	}

	if len(day.Food) > 0 {
		b.WriteString("## Food\n")
		for _, f := range day.Food {
			fmt.Fprintf(&b, "- %s\n", f.Name)
		}
		b.WriteString("\n")
	}

	if day.Miles != nil || day.Elevation != nil {
		b.WriteString("## Running\n")
		if day.Miles != nil {
			fmt.Fprintf(&b, "- **Miles:** %s mi\n", FormatNumber(*day.Miles))
		}
		if day.Elevation != nil {
			fmt.Fprintf(&b, "- **Elevation:** %d ft\n", *day.Elevation)
		}
		b.WriteString("\n")
	}

	if len(day.Sokay) > 0 {
		b.WriteString("## Sokay\n")
		for _, s := range day.Sokay {
			fmt.Fprintf(&b, "- %s\n", s.Name)
		}
		b.WriteString("\n")
	}

	if day.StrengthMobility != nil {
		b.WriteString("## Strength & Mobility\n")
		b.WriteString(*day.StrengthMobility)
		b.WriteString("\n")
	}

	if day.Notes != nil {
		b.WriteString("## Notes\n")
		b.WriteString(*day.Notes)
		b.WriteString("\n")
	}

	return b.String()
}

// FormatNumber prints v in its shortest form: 180, 180.5.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (d *Dir) atomicWrite(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".mtslog-*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", ErrBackup, err)
	}
	tmpName := tmp.Name()

	if err := syscall.Flock(int(tmp.Fd()), syscall.LOCK_EX); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: acquiring lock: %v", ErrBackup, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing temp file: %v", ErrBackup, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: closing temp file: %v", ErrBackup, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: renaming file: %v", ErrBackup, err)
	}
	return nil
}
