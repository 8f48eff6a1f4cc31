package cloudsync

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tursodatabase/go-libsql"

	"github.com/papadavis47/mountains-tui/internal/daylog"
	"github.com/papadavis47/mountains-tui/internal/storage/sqlite"
)

// ReplicaFile is the embedded replica database inside the data directory.
const ReplicaFile = "replica.db"

// Credentials locate a Turso database.
type Credentials struct {
	URL       string
	AuthToken string
}

// Configured reports whether a remote URL is set.
func (c Credentials) Configured() bool { return c.URL != "" }

// TursoRemote pushes days into a Turso database through a local embedded
// replica. Writes go through the same schema code as the local store.
type TursoRemote struct {
	path  string
	creds Credentials

	connector *libsql.Connector
	store     *sqlite.Store
}

// NewTursoRemote returns a remote whose replica lives in dataDir. Nothing is
// opened until Connect.
func NewTursoRemote(dataDir string, creds Credentials) *TursoRemote {
	return &TursoRemote{path: filepath.Join(dataDir, ReplicaFile), creds: creds}
}

// Connect opens the embedded replica and pulls the remote state.
func (r *TursoRemote) Connect(ctx context.Context) error {
	if r.store != nil {
		return r.sync()
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return fmt.Errorf("creating replica directory: %w", err)
	}

	var opts []libsql.Option
	if r.creds.AuthToken != "" {
		opts = append(opts, libsql.WithAuthToken(r.creds.AuthToken))
	}
	connector, err := libsql.NewEmbeddedReplicaConnector(r.path, r.creds.URL, opts...)
	if err != nil {
		return fmt.Errorf("opening replica: %w", err)
	}

	store, err := sqlite.NewWithDB(sql.OpenDB(connector))
	if err != nil {
		connector.Close()
		return err
	}
	r.connector = connector
	r.store = store
	return r.sync()
}

func (r *TursoRemote) sync() error {
	if _, err := r.connector.Sync(); err != nil {
		return fmt.Errorf("replicating: %w", err)
	}
	return nil
}

// Push applies the changes to the replica, then replicates.
func (r *TursoRemote) Push(ctx context.Context, changes []Change) error {
	if r.store == nil {
		return fmt.Errorf("replica not connected")
	}
	for _, c := range changes {
		if c.Day == nil {
			date, err := daylog.ParseKey(c.Key)
			if err != nil {
				return err
			}
			if err := r.store.DeleteDay(ctx, date); err != nil {
				return err
			}
			continue
		}
		if err := r.store.UpsertDay(ctx, *c.Day); err != nil {
			return err
		}
	}
	return r.sync()
}

// Close closes the replica.
func (r *TursoRemote) Close() error {
	if r.store == nil {
		return nil
	}
	err := r.store.Close()
	if cerr := r.connector.Close(); err == nil {
		err = cerr
	}
	r.store, r.connector = nil, nil
	return err
}
