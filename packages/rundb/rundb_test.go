package rundb

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/POE21L/tractconf/packages/core/config"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testConfig(name string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.ExpName = name
	cfg.NumClasses = 72
	return cfg
}

func TestRecordAndGet(t *testing.T) {
	store := openTestStore(t)

	run, err := store.Record(testConfig("DmReg_test"))
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, "DmReg_test", run.Experiment)
	assert.Equal(t, StatusPending, run.Status)

	got, err := store.Get(run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, run.Experiment, got.Experiment)
	assert.JSONEq(t, run.ConfigJSON, got.ConfigJSON)
	assert.Nil(t, got.FinishedAt)
}

func TestGetNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Get("no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFinish(t *testing.T) {
	store := openTestStore(t)

	run, err := store.Record(testConfig("DmReg_test"))
	require.NoError(t, err)

	require.NoError(t, store.Finish(run.ID, false))

	got, err := store.Get(run.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusFinished, got.Status)
	require.NotNil(t, got.FinishedAt)
	assert.True(t, got.Duration() >= 0)
}

func TestFinishFailed(t *testing.T) {
	store := openTestStore(t)

	run, err := store.Record(testConfig("DmReg_test"))
	require.NoError(t, err)

	require.NoError(t, store.Finish(run.ID, true))

	got, err := store.Get(run.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, got.Status)
}

func TestFinishNotFound(t *testing.T) {
	store := openTestStore(t)
	assert.ErrorIs(t, store.Finish("no-such-id", false), ErrNotFound)
}

func TestList(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 3; i++ {
		_, err := store.Record(testConfig("ExpA"))
		require.NoError(t, err)
	}
	_, err := store.Record(testConfig("ExpB"))
	require.NoError(t, err)

	all, err := store.List("", 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	onlyA, err := store.List("ExpA", 0)
	require.NoError(t, err)
	assert.Len(t, onlyA, 3)
	for _, run := range onlyA {
		assert.Equal(t, "ExpA", run.Experiment)
	}

	limited, err := store.List("", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestQuery(t *testing.T) {
	store := openTestStore(t)

	cfg := testConfig("DmReg_test")
	cfg.NumEpochs = 500
	run, err := store.Record(cfg)
	require.NoError(t, err)

	epochs, err := store.Query(run.ID, "num_epochs")
	require.NoError(t, err)
	assert.Equal(t, "500", epochs)

	metric, err := store.Query(run.ID, "metric_types.0")
	require.NoError(t, err)
	assert.Equal(t, "loss", metric)

	_, err = store.Query(run.ID, "no_such_key")
	assert.Error(t, err)
}

func TestDurations(t *testing.T) {
	store := openTestStore(t)

	run1, err := store.Record(testConfig("ExpA"))
	require.NoError(t, err)
	require.NoError(t, store.Finish(run1.ID, false))

	// unfinished and failed runs are excluded
	_, err = store.Record(testConfig("ExpA"))
	require.NoError(t, err)
	run3, err := store.Record(testConfig("ExpA"))
	require.NoError(t, err)
	require.NoError(t, store.Finish(run3.ID, true))

	durations, err := store.Durations("ExpA")
	require.NoError(t, err)
	assert.Len(t, durations, 1)
	assert.True(t, durations[0] < time.Minute)
}
