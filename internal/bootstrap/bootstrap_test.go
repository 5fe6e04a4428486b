package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/modstanding/internal/catalog"
	"github.com/osse101/modstanding/internal/config"
	"github.com/osse101/modstanding/internal/domain"
)

type seedRecorder struct {
	catalog.Service
	seeded []domain.PunishmentType
}

func (s *seedRecorder) Seed(_ context.Context, types []domain.PunishmentType) (int, error) {
	s.seeded = append(s.seeded, types...)
	return len(types), nil
}

func TestCleanupLogs(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"session_2024-01-01_00-00-00.log",
		"session_2024-01-02_00-00-00.log",
		"session_2024-01-03_00-00-00.log",
		"session_2024-01-04_00-00-00.log",
	}
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), nil, 0o600))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "event_deadletter.jsonl"), nil, 0o600))

	cleanupLogs(dir, 2)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var remaining []string
	for _, e := range entries {
		remaining = append(remaining, e.Name())
	}
	assert.ElementsMatch(t, []string{
		"session_2024-01-03_00-00-00.log",
		"session_2024-01-04_00-00-00.log",
		"event_deadletter.jsonl",
	}, remaining)
}

func TestNewForwarder(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantNil bool
		wantErr bool
	}{
		{"memory has no forwarder", config.Config{EventTransport: config.EventTransportMemory}, true, false},
		{"empty defaults to memory", config.Config{}, true, false},
		{"kafka without brokers fails", config.Config{EventTransport: config.EventTransportKafka, KafkaTopic: "t"}, true, true},
		{"kafka with brokers", config.Config{EventTransport: config.EventTransportKafka, KafkaBrokers: []string{"localhost:9092"}, KafkaTopic: "t"}, false, false},
		{"unknown transport fails", config.Config{EventTransport: "carrier-pigeon"}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := newForwarder(&tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.wantNil {
				assert.Nil(t, f)
			} else {
				require.NotNil(t, f)
				assert.NoError(t, f.Close())
			}
		})
	}
}

func TestInitializeEventSystem_Memory(t *testing.T) {
	cfg := &config.Config{
		EventTransport: config.EventTransportMemory,
		DeadLetterPath: filepath.Join(t.TempDir(), "dl", "events.jsonl"),
	}

	events, err := InitializeEventSystem(cfg)
	require.NoError(t, err)
	assert.Nil(t, events.Transport)
	assert.NotNil(t, events.Bus)
	assert.DirExists(t, filepath.Dir(cfg.DeadLetterPath))
	assert.NoError(t, events.Publisher.Shutdown(context.Background()))
}

func TestSyncCatalog(t *testing.T) {
	t.Run("missing file keeps built-ins only", func(t *testing.T) {
		rec := &seedRecorder{}
		err := SyncCatalog(context.Background(), rec, filepath.Join(t.TempDir(), "missing.yaml"), "configs/schemas")
		require.NoError(t, err)
		assert.Empty(t, rec.seeded)
	})

	t.Run("shipped catalog is seeded", func(t *testing.T) {
		rec := &seedRecorder{}
		err := SyncCatalog(context.Background(), rec, "../../configs/punishment_types.yaml", "configs/schemas")
		require.NoError(t, err)
		assert.NotEmpty(t, rec.seeded)
	})

	t.Run("invalid yaml fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("punishment_types: [\n"), 0o600))
		rec := &seedRecorder{}
		assert.Error(t, SyncCatalog(context.Background(), rec, path, "configs/schemas"))
		assert.Empty(t, rec.seeded)
	})
}
