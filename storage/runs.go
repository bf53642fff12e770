package storage

import (
	"context"
	"database/sql"
	"log"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/lixenwraith/tremor/core"
)

// Run is one play session as kept in the history table
type Run struct {
	ID           string
	StartedAt    time.Time
	EndedAt      time.Time
	Buildings    int
	Joints       int
	JointsBroken int
	Quakes       int
	PeakHeight   float64
	Money        int64
}

// RunStore persists run history in sqlite
// Submit hands rows to a writer goroutine; Record and Best run on the caller
type RunStore struct {
	db *sql.DB

	ch   chan Run
	wg   sync.WaitGroup
	once sync.Once

	closed atomic.Bool
}

// OpenRunStore opens or creates the history database at path
func OpenRunStore(path string) (*RunStore, error) {
	if path == "" {
		return nil, errors.New("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "create db dir")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "open db")
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &RunStore{
		db: db,
		ch: make(chan Run, 64),
	}
	s.wg.Add(1)
	core.Go(func() {
		defer s.wg.Done()
		s.loop()
	})
	return s, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return errors.Wrapf(err, "pragma %q", p)
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			buildings INTEGER NOT NULL,
			joints INTEGER NOT NULL,
			joints_broken INTEGER NOT NULL,
			quakes INTEGER NOT NULL,
			peak_height REAL NOT NULL,
			money INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_peak ON runs(peak_height DESC);`,
	}
	for _, st := range stmts {
		if _, err := db.Exec(st); err != nil {
			return errors.Wrap(err, "init schema")
		}
	}
	return nil
}

// Record upserts a run row; later records for the same id replace earlier ones
func (s *RunStore) Record(ctx context.Context, r Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO runs(id,started_at,ended_at,buildings,joints,joints_broken,quakes,peak_height,money)
		VALUES(?,?,?,?,?,?,?,?,?)`,
		r.ID,
		r.StartedAt.UTC().Format(time.RFC3339Nano),
		r.EndedAt.UTC().Format(time.RFC3339Nano),
		r.Buildings, r.Joints, r.JointsBroken, r.Quakes, r.PeakHeight, r.Money,
	)
	return errors.Wrapf(err, "record run %s", r.ID)
}

// Best returns up to n runs ordered by peak height
func (s *RunStore) Best(ctx context.Context, n int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,started_at,ended_at,buildings,joints,joints_broken,quakes,peak_height,money
		FROM runs ORDER BY peak_height DESC, started_at ASC LIMIT ?`, n)
	if err != nil {
		return nil, errors.Wrap(err, "query runs")
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			r              Run
			started, ended string
		)
		if err := rows.Scan(&r.ID, &started, &ended, &r.Buildings, &r.Joints, &r.JointsBroken,
			&r.Quakes, &r.PeakHeight, &r.Money); err != nil {
			return nil, errors.Wrap(err, "scan run")
		}
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		r.EndedAt, _ = time.Parse(time.RFC3339Nano, ended)
		out = append(out, r)
	}
	return out, errors.Wrap(rows.Err(), "iterate runs")
}

// Submit queues a run for the writer goroutine; drops when the writer falls behind
func (s *RunStore) Submit(r Run) {
	if s == nil || s.closed.Load() {
		return
	}
	select {
	case s.ch <- r:
	default:
	}
}

func (s *RunStore) loop() {
	for r := range s.ch {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := s.Record(ctx, r); err != nil {
			log.Printf("storage: %v", err)
		}
		cancel()
	}
}

// Close drains pending submissions and closes the database
func (s *RunStore) Close() error {
	var err error
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.ch)
		s.wg.Wait()
		err = s.db.Close()
	})
	return err
}
