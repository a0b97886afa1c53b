package scripting_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/blockkit/pkg/damage"
	"github.com/cory-johannsen/blockkit/pkg/random"
	"github.com/cory-johannsen/blockkit/internal/scripting"
)

func newTestManagerWithSource(t testing.TB, src random.Source) (*scripting.Manager, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)
	mgr := scripting.NewManager(random.NewPicker(src, logger), damage.NewCalculator(nil), logger)
	t.Cleanup(mgr.Close)
	return mgr, logs
}

func newTestManager(t testing.TB) (*scripting.Manager, *observer.ObservedLogs) {
	t.Helper()
	return newTestManagerWithSource(t, random.NewSeededSource(1))
}

func writeTempLua(t testing.TB, filename, src string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte(src), 0644))
	return dir
}
