package postgres

import (
	"database/sql"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolWaitReport(t *testing.T) {
	prev := sql.DBStats{WaitCount: 10, WaitDuration: time.Second}

	_, _, ok := poolWaitReport(prev, prev)
	assert.False(t, ok)

	level, attrs, ok := poolWaitReport(prev, sql.DBStats{WaitCount: 12, WaitDuration: time.Second + 20*time.Millisecond})
	require.True(t, ok)
	assert.Equal(t, slog.LevelDebug, level)
	assert.Equal(t, int64(2), attrs[0].Value.Int64())
	assert.Equal(t, 10*time.Millisecond, attrs[2].Value.Duration())

	level, _, ok = poolWaitReport(prev, sql.DBStats{WaitCount: 11, WaitDuration: time.Second + 80*time.Millisecond})
	require.True(t, ok)
	assert.Equal(t, slog.LevelWarn, level)
}
