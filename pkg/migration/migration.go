// Package migration runs ordered, tracked changes against the Mongo database
// (index creation, backfills).
//
// Usage (in database/migrations):
//
//	func init() {
//	    migration.Register("20260101000000_users_email_unique", &UsersEmailUnique{})
//	}
//
// Run from CLI:
//
//	plantnet migrate             // run all pending
//	plantnet migrate:rollback    // roll back the last batch
//	plantnet migrate:status
package migration

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/plantnet/pkg/logger"
)

// Migration is the interface every migration must implement.
type Migration interface {
	Up(ctx context.Context, db *mongo.Database) error
	Down(ctx context.Context, db *mongo.Database) error
}

// Record is one applied migration as stored in the tracking collection.
type Record struct {
	Name  string    `bson:"name"`
	Batch int       `bson:"batch"`
	RunAt time.Time `bson:"runAt"`
}

// Status is one row of migrate:status.
type Status struct {
	Name  string
	Ran   bool
	Batch int
}

// Tracker persists which migrations have run.
type Tracker interface {
	Applied(ctx context.Context) ([]Record, error)
	Save(ctx context.Context, rec Record) error
	Remove(ctx context.Context, name string) error
}

// ErrNoMigrations is returned when Run is called but no migrations are registered.
var ErrNoMigrations = errors.New("migration: none registered")

// ------------------- Registry -------------------

type registered struct {
	name string
	m    Migration
}

var registry []registered

// Register adds a migration to the global registry. name must be
// timestamp-prefixed so lexical order is chronological.
func Register(name string, m Migration) {
	registry = append(registry, registered{name: name, m: m})
}

// Reset clears the registry (tests only).
func Reset() { registry = nil }

func sorted() []registered {
	out := append([]registered(nil), registry...)
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// ------------------- Runner -------------------

// Runner executes and tracks migrations.
type Runner struct {
	db      *mongo.Database
	tracker Tracker
	now     func() time.Time
}

// New creates a Runner that tracks state in the "migrations" collection of db.
func New(db *mongo.Database, collection string) *Runner {
	return NewWithTracker(db, &mongoTracker{col: db.Collection(collection)})
}

// NewWithTracker creates a Runner with a custom Tracker.
func NewWithTracker(db *mongo.Database, t Tracker) *Runner {
	return &Runner{db: db, tracker: t, now: time.Now}
}

// Pending returns the names of migrations that have not yet run.
func (r *Runner) Pending(ctx context.Context) ([]string, error) {
	ran, err := r.appliedSet(ctx)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, reg := range sorted() {
		if _, ok := ran[reg.name]; !ok {
			names = append(names, reg.name)
		}
	}
	return names, nil
}

// Run executes all pending migrations as one batch and returns the names run.
func (r *Runner) Run(ctx context.Context) ([]string, error) {
	if len(registry) == 0 {
		return nil, ErrNoMigrations
	}
	ran, err := r.appliedSet(ctx)
	if err != nil {
		return nil, fmt.Errorf("migration: fetch applied: %w", err)
	}

	batch := 1
	for _, rec := range ran {
		if rec.Batch >= batch {
			batch = rec.Batch + 1
		}
	}

	var done []string
	for _, reg := range sorted() {
		if _, ok := ran[reg.name]; ok {
			continue
		}
		logger.Info("migration: running", "name", reg.name)
		if err := reg.m.Up(ctx, r.db); err != nil {
			return done, fmt.Errorf("migration: %s up: %w", reg.name, err)
		}
		if err := r.tracker.Save(ctx, Record{Name: reg.name, Batch: batch, RunAt: r.now()}); err != nil {
			return done, fmt.Errorf("migration: record %s: %w", reg.name, err)
		}
		done = append(done, reg.name)
	}

	logger.Info("migration: done", "ran", len(done), "batch", batch)
	return done, nil
}

// Rollback reverses every migration of the most recent batch, newest first.
func (r *Runner) Rollback(ctx context.Context) ([]string, error) {
	ran, err := r.appliedSet(ctx)
	if err != nil {
		return nil, err
	}

	last := 0
	for _, rec := range ran {
		if rec.Batch > last {
			last = rec.Batch
		}
	}
	if last == 0 {
		return nil, nil
	}

	byName := make(map[string]Migration, len(registry))
	for _, reg := range registry {
		byName[reg.name] = reg.m
	}

	var names []string
	for name, rec := range ran {
		if rec.Batch == last {
			names = append(names, name)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	var done []string
	for _, name := range names {
		m, ok := byName[name]
		if !ok {
			return done, fmt.Errorf("migration: cannot roll back %s: not registered", name)
		}
		logger.Info("migration: rolling back", "name", name)
		if err := m.Down(ctx, r.db); err != nil {
			return done, fmt.Errorf("migration: %s down: %w", name, err)
		}
		if err := r.tracker.Remove(ctx, name); err != nil {
			return done, err
		}
		done = append(done, name)
	}
	return done, nil
}

// Status lists every registered migration and whether it has run.
func (r *Runner) Status(ctx context.Context) ([]Status, error) {
	ran, err := r.appliedSet(ctx)
	if err != nil {
		return nil, err
	}
	var out []Status
	for _, reg := range sorted() {
		rec, ok := ran[reg.name]
		out = append(out, Status{Name: reg.name, Ran: ok, Batch: rec.Batch})
	}
	return out, nil
}

func (r *Runner) appliedSet(ctx context.Context) (map[string]Record, error) {
	recs, err := r.tracker.Applied(ctx)
	if err != nil {
		return nil, err
	}
	set := make(map[string]Record, len(recs))
	for _, rec := range recs {
		set[rec.Name] = rec
	}
	return set, nil
}

// ------------------- Mongo tracker -------------------

type mongoTracker struct {
	col *mongo.Collection
}

func (t *mongoTracker) Applied(ctx context.Context) ([]Record, error) {
	cur, err := t.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var recs []Record
	if err := cur.All(ctx, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func (t *mongoTracker) Save(ctx context.Context, rec Record) error {
	_, err := t.col.UpdateOne(ctx,
		bson.M{"name": rec.Name},
		bson.M{"$set": rec},
		options.Update().SetUpsert(true),
	)
	return err
}

func (t *mongoTracker) Remove(ctx context.Context, name string) error {
	_, err := t.col.DeleteOne(ctx, bson.M{"name": name})
	return err
}
