package migration_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/plantnet/pkg/migration"
)

type memTracker struct{ recs map[string]migration.Record }

func newMemTracker() *memTracker { return &memTracker{recs: map[string]migration.Record{}} }

func (m *memTracker) Applied(context.Context) ([]migration.Record, error) {
	var out []migration.Record
	for _, r := range m.recs {
		out = append(out, r)
	}
	return out, nil
}

func (m *memTracker) Save(_ context.Context, r migration.Record) error {
	m.recs[r.Name] = r
	return nil
}

func (m *memTracker) Remove(_ context.Context, name string) error {
	delete(m.recs, name)
	return nil
}

type step struct {
	log  *[]string
	name string
	fail bool
}

func (s step) Up(context.Context, *mongo.Database) error {
	if s.fail {
		return errors.New("index build failed")
	}
	*s.log = append(*s.log, "up:"+s.name)
	return nil
}

func (s step) Down(context.Context, *mongo.Database) error {
	*s.log = append(*s.log, "down:"+s.name)
	return nil
}

func TestRunInOrderThenNothingPending(t *testing.T) {
	migration.Reset()
	defer migration.Reset()

	var log []string
	migration.Register("0002_b", step{log: &log, name: "b"})
	migration.Register("0001_a", step{log: &log, name: "a"})

	ctx := context.Background()
	r := migration.NewWithTracker(nil, newMemTracker())

	ran, err := r.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_a", "0002_b"}, ran)
	assert.Equal(t, []string{"up:a", "up:b"}, log)

	pending, err := r.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	ran, err = r.Run(ctx)
	require.NoError(t, err)
	assert.Empty(t, ran)
}

func TestRollbackLastBatchOnly(t *testing.T) {
	migration.Reset()
	defer migration.Reset()

	var log []string
	ctx := context.Background()
	r := migration.NewWithTracker(nil, newMemTracker())

	migration.Register("0001_a", step{log: &log, name: "a"})
	_, err := r.Run(ctx)
	require.NoError(t, err)

	migration.Register("0002_b", step{log: &log, name: "b"})
	migration.Register("0003_c", step{log: &log, name: "c"})
	_, err = r.Run(ctx)
	require.NoError(t, err)

	rolled, err := r.Rollback(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"0003_c", "0002_b"}, rolled)

	status, err := r.Status(ctx)
	require.NoError(t, err)
	require.Len(t, status, 3)
	assert.True(t, status[0].Ran)
	assert.Equal(t, 1, status[0].Batch)
	assert.False(t, status[1].Ran)
	assert.False(t, status[2].Ran)
}

func TestRunStopsOnFailure(t *testing.T) {
	migration.Reset()
	defer migration.Reset()

	var log []string
	migration.Register("0001_a", step{log: &log, name: "a"})
	migration.Register("0002_b", step{log: &log, name: "b", fail: true})
	migration.Register("0003_c", step{log: &log, name: "c"})

	tr := newMemTracker()
	ran, err := migration.NewWithTracker(nil, tr).Run(context.Background())
	assert.Error(t, err)
	assert.Equal(t, []string{"0001_a"}, ran)
	assert.Len(t, tr.recs, 1)
}

func TestRunWithoutMigrations(t *testing.T) {
	migration.Reset()
	_, err := migration.NewWithTracker(nil, newMemTracker()).Run(context.Background())
	assert.ErrorIs(t, err, migration.ErrNoMigrations)
}
