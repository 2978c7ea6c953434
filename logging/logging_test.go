package logging_test

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gnnlab/logging"
)

// logFilePath returns today's dated file for the given service.
func logFilePath(dir, service string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.log", service, time.Now().Format("2006-01-02")))
}

// readRecords decodes every JSON line of the log file.
func readRecords(t *testing.T, path string) []map[string]any {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var out []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec))
		out = append(out, rec)
	}
	require.NoError(t, sc.Err())
	return out
}

// TestNew_FileDestination writes JSON records into the dated file and
// stamps the service attribute.
func TestNew_FileDestination(t *testing.T) {
	dir := t.TempDir()
	log, err := logging.New(logging.Config{LogDir: dir, Quiet: true})
	require.NoError(t, err)

	log.Info("training started", "dataset", "wisconsin", "split", 0)
	require.NoError(t, log.Close())

	recs := readRecords(t, logFilePath(dir, logging.DefaultService))
	require.Len(t, recs, 1)
	assert.Equal(t, "training started", recs[0]["msg"])
	assert.Equal(t, "wisconsin", recs[0]["dataset"])
	assert.Equal(t, logging.DefaultService, recs[0]["service"])
	assert.Equal(t, "INFO", recs[0]["level"])
}

// TestNew_LevelFilter drops records below the configured level.
func TestNew_LevelFilter(t *testing.T) {
	dir := t.TempDir()
	log, err := logging.New(logging.Config{Level: slog.LevelWarn, LogDir: dir, Quiet: true})
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("hidden too")
	log.Warn("kept")
	require.NoError(t, log.Close())

	recs := readRecords(t, logFilePath(dir, logging.DefaultService))
	require.Len(t, recs, 1)
	assert.Equal(t, "kept", recs[0]["msg"])
}

// TestNew_ServiceOverride names the file and the attribute after the
// configured service.
func TestNew_ServiceOverride(t *testing.T) {
	dir := t.TempDir()
	log, err := logging.New(logging.Config{LogDir: dir, Service: "sweep", Quiet: true})
	require.NoError(t, err)

	log.Info("pass")
	require.NoError(t, log.Close())

	recs := readRecords(t, logFilePath(dir, "sweep"))
	require.Len(t, recs, 1)
	assert.Equal(t, "sweep", recs[0]["service"])
}

// TestNew_AppendsAcrossInstances keeps earlier records when a second
// logger opens the same day file.
func TestNew_AppendsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	cfg := logging.Config{LogDir: dir, Quiet: true}

	first, err := logging.New(cfg)
	require.NoError(t, err)
	first.Info("one")
	require.NoError(t, first.Close())

	second, err := logging.New(cfg)
	require.NoError(t, err)
	second.Info("two")
	require.NoError(t, second.Close())

	recs := readRecords(t, logFilePath(dir, logging.DefaultService))
	require.Len(t, recs, 2)
	assert.Equal(t, "one", recs[0]["msg"])
	assert.Equal(t, "two", recs[1]["msg"])
}

// TestNew_BadLogDir surfaces the preparation failure.
func TestNew_BadLogDir(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := logging.New(logging.Config{LogDir: blocker})
	assert.Error(t, err, "a plain file cannot become the log directory")
}

// TestCloseWithoutFile is a no-op for stderr-only loggers.
func TestCloseWithoutFile(t *testing.T) {
	log := logging.Default()
	assert.NoError(t, log.Close())
}

// TestParseLevel accepts the usual spellings and rejects junk.
func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"Warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range cases {
		got, err := logging.ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := logging.ParseLevel("chatty")
	assert.Error(t, err)
}
