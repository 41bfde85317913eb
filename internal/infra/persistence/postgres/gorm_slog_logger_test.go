package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"margdarshak/config"
	deliverycontext "margdarshak/internal/delivery/context"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newBufferedGormLogger(debug bool) (*gormSlogLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	cfg := &config.Config{}
	cfg.Env.Debug = debug
	l := newGormSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)), cfg)

	return l.(*gormSlogLogger), &buf
}

func TestGormSlogLogger_ParamsFilterDropsValues(t *testing.T) {
	l, _ := newBufferedGormLogger(false)

	sql, params := l.ParamsFilter(context.Background(), `SELECT * FROM "users" WHERE email = $1`, "a@x.com")
	assert.Equal(t, `SELECT * FROM "users" WHERE email = $1`, sql)
	assert.Nil(t, params)
}

func TestGormSlogLogger_TraceErrors(t *testing.T) {
	l, buf := newBufferedGormLogger(false)
	sqlFn := func() (string, int64) { return "SELECT 1", 0 }

	l.Trace(context.Background(), time.Now(), sqlFn, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	l.Trace(context.Background(), time.Now(), sqlFn, nil)
	assert.Empty(t, buf.String())

	ctx := deliverycontext.WithLogger(context.Background(), l.logger.With(slog.String("request_id", "req-1")))
	l.Trace(ctx, time.Now(), sqlFn, errors.New("boom"))
	assert.Contains(t, buf.String(), "GORM query failed")
	assert.Contains(t, buf.String(), "req-1")
}

func TestGormSlogLogger_DebugLogsQueries(t *testing.T) {
	l, buf := newBufferedGormLogger(true)

	l.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 1 }, nil)
	assert.Contains(t, buf.String(), "SELECT 1")
}
