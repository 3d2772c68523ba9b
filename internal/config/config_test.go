package config

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "story_nodes.db", cfg.DBPath)
	assert.Equal(t, 8, cfg.DBMaxConns)
	assert.Equal(t, 5*time.Second, cfg.DBBusyTimeout)
	assert.Equal(t, 4, cfg.FanoutLimit)
	assert.Equal(t, "stderr", cfg.LogOutputPath)
	assert.False(t, cfg.MetricsDump)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("STORY_DB_PATH", "/tmp/stories/test.db")
	t.Setenv("DB_MAX_CONNECTIONS", "2")
	t.Setenv("DB_BUSY_TIMEOUT", "250ms")
	t.Setenv("STORY_FANOUT_LIMIT", "2")
	t.Setenv("STORY_METRICS_DUMP", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/stories/test.db", cfg.DBPath)
	assert.Equal(t, 2, cfg.DBMaxConns)
	assert.Equal(t, 250*time.Millisecond, cfg.DBBusyTimeout)
	assert.Equal(t, 2, cfg.FanoutLimit)
	assert.True(t, cfg.MetricsDump)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Run("fanout above pool size", func(t *testing.T) {
		t.Setenv("DB_MAX_CONNECTIONS", "2")
		t.Setenv("STORY_FANOUT_LIMIT", "3")
		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "STORY_FANOUT_LIMIT")
	})

	t.Run("zero pool", func(t *testing.T) {
		t.Setenv("DB_MAX_CONNECTIONS", "0")
		_, err := LoadConfig()
		require.Error(t, err)
	})

	t.Run("not a number", func(t *testing.T) {
		t.Setenv("DB_MAX_CONNECTIONS", "many")
		_, err := LoadConfig()
		require.Error(t, err)
	})
}

func TestGetDSNCarriesPragmas(t *testing.T) {
	cfg := &Config{DBPath: "data/stories.db", DBBusyTimeout: 1500 * time.Millisecond}
	dsn := cfg.GetDSN()

	require.True(t, strings.HasPrefix(dsn, "file:data/stories.db?"))
	q, err := url.ParseQuery(dsn[strings.Index(dsn, "?")+1:])
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"foreign_keys(1)", "busy_timeout(1500)", "journal_mode(WAL)"}, q["_pragma"])
	assert.Equal(t, "immediate", q.Get("_txlock"))
}

func TestGetDSNEscapesPath(t *testing.T) {
	cfg := &Config{DBPath: "data/odd?name#1%.db", DBBusyTimeout: time.Second}
	dsn := cfg.GetDSN()

	path, query, found := strings.Cut(dsn, "?")
	require.True(t, found)
	assert.Equal(t, "file:data/odd%3Fname%231%25.db", path)

	q, err := url.ParseQuery(query)
	require.NoError(t, err)
	assert.Equal(t, "immediate", q.Get("_txlock"))
	assert.Len(t, q["_pragma"], 3)
}
