// Package persist runs durable writes off the interactive loop. Each
// mutation is queued as a job keyed by its day: jobs for one day run one at a
// time in submission order, jobs for different days run concurrently.
package persist

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/sourcegraph/conc/panics"

	"github.com/papadavis47/mountains-tui/internal/daylog"
	"github.com/papadavis47/mountains-tui/internal/storage"
)

// JobTimeout bounds a single store-and-backup job.
const JobTimeout = 30 * time.Second

// Backup mirrors days to human-readable files.
type Backup interface {
	Write(day daylog.DailyEntry) error
	Remove(date time.Time) error
}

// DirtyMarker records days that changed since the last cloud sync.
type DirtyMarker interface {
	MarkDirty(key string)
}

// Op is the kind of write a job performs.
type Op int

const (
	OpSave Op = iota
	OpDelete
)

func (o Op) String() string {
	if o == OpDelete {
		return "delete"
	}
	return "save"
}

// Result reports the outcome of one job.
type Result struct {
	Key string
	Op  Op
	Err error
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithOnResult registers a hook called from the worker goroutine after
// every job.
func WithOnResult(fn func(Result)) Option {
	return func(c *Coordinator) { c.onResult = fn }
}

// WithDirtyMarker marks every written day dirty for the next cloud sync.
func WithDirtyMarker(m DirtyMarker) Option {
	return func(c *Coordinator) { c.dirty = m }
}

// WithLogger replaces the default logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Coordinator) { c.logger = l }
}

type job struct {
	op   Op
	day  daylog.DailyEntry
	date time.Time
}

// Coordinator serializes writes per day. The zero value is not usable; use New.
type Coordinator struct {
	store    storage.DayStore
	backup   Backup
	onResult func(Result)
	dirty    DirtyMarker
	logger   *log.Logger

	mu     sync.Mutex
	queues map[string][]job // pending jobs per day; a key is present while its worker runs
	wg     sync.WaitGroup
}

// New creates a Coordinator writing to store and backup. backup may be nil.
func New(store storage.DayStore, backup Backup, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:  store,
		backup: backup,
		logger: log.Default(),
		queues: make(map[string][]job),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SaveDay queues an upsert of the snapshot. The caller must not mutate the
// snapshot afterwards; pass a Clone.
func (c *Coordinator) SaveDay(snapshot daylog.DailyEntry) {
	c.enqueue(snapshot.Key(), job{op: OpSave, day: snapshot, date: snapshot.Date})
}

// DeleteDay queues removal of the day.
func (c *Coordinator) DeleteDay(date time.Time) {
	date = daylog.NormalizeDate(date)
	c.enqueue(daylog.KeyFor(date), job{op: OpDelete, date: date})
}

func (c *Coordinator) enqueue(key string, j job) {
	c.wg.Add(1)

	c.mu.Lock()
	pending, running := c.queues[key]
	c.queues[key] = append(pending, j)
	c.mu.Unlock()

	if !running {
		go c.drain(key)
	}
}

// drain runs the queued jobs of key until the queue is empty.
func (c *Coordinator) drain(key string) {
	for {
		c.mu.Lock()
		pending := c.queues[key]
		if len(pending) == 0 {
			delete(c.queues, key)
			c.mu.Unlock()
			return
		}
		j := pending[0]
		c.queues[key] = pending[1:]
		c.mu.Unlock()

		c.run(key, j)
		c.wg.Done()
	}
}

func (c *Coordinator) run(key string, j job) {
	var err error
	var pc panics.Catcher
	pc.Try(func() { err = c.write(j) })
	if r := pc.Recovered(); r != nil {
		err = fmt.Errorf("%w: job panicked: %v", storage.ErrStorage, r.AsError())
	}

	if err != nil {
		c.logger.Printf("persist: %s %s: %v", j.op, key, err)
	}
	if c.dirty != nil {
		c.dirty.MarkDirty(key)
	}
	if c.onResult != nil {
		c.onResult(Result{Key: key, Op: j.op, Err: err})
	}
}

// write performs the store write then the backup write. A store failure
// skips the backup write.
func (c *Coordinator) write(j job) error {
	ctx, cancel := context.WithTimeout(context.Background(), JobTimeout)
	defer cancel()

	switch j.op {
	case OpDelete:
		if err := c.store.DeleteDay(ctx, j.date); err != nil {
			return err
		}
		if c.backup != nil {
			return c.backup.Remove(j.date)
		}
	default:
		if err := c.store.UpsertDay(ctx, j.day); err != nil {
			return err
		}
		if c.backup != nil {
			return c.backup.Write(j.day)
		}
	}
	return nil
}

// Flush waits until every queued job has finished or ctx is done.
func (c *Coordinator) Flush(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pending returns the number of days with queued or running jobs.
func (c *Coordinator) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queues)
}
