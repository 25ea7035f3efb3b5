package logging

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerWithConfig_ConsoleOnlySetsGlobalLevel(t *testing.T) {
	cfg := LogConfig{Level: "info", Console: true, File: false}
	logger := NewLoggerWithConfig(cfg)
	require.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	_ = logger
}

func TestNewLoggerWithConfig_FileWriterCreatesLogDir(t *testing.T) {
	dir := t.TempDir()
	cfg := LogConfig{
		Console:  false,
		File:     true,
		FilePath: filepath.Join(dir, "nested", "pipeline.log"),
		MaxSize:  1,
	}
	logger := NewLoggerWithConfig(cfg)
	logger.Info().Msg("hello")
	require.DirExists(t, filepath.Join(dir, "nested"))
}

func TestParseLevel_UnknownFallsBackToInfo(t *testing.T) {
	require.Equal(t, zerolog.InfoLevel, parseLevel("nonsense"))
	require.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
}

func TestWithRun_AddsRunIdField(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	logger = WithRun(logger, "abc-123")
	logger.Info().Msg("starting")

	require.Contains(t, buf.String(), `"run_id":"abc-123"`)
}

func TestWithProduct_AddsProductField(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	logger = WithProduct(logger, "T2Y")
	logger.Info().Msg("priced")

	require.Contains(t, buf.String(), `"product":"T2Y"`)
}

func TestFromContext_ReturnsNopWhenAbsent(t *testing.T) {
	logger := FromContext(context.Background())
	require.NotNil(t, logger)
}

func TestWithLogger_RoundTripsThroughContext(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	ctx := WithLogger(context.Background(), logger)

	got := FromContext(ctx)
	got.Info().Msg("from context")
	require.Contains(t, buf.String(), "from context")
}
