package service

import (
	"testing"
	"time"

	"github.com/hanseilab/hansei-backend/internal/config"
	"github.com/hanseilab/hansei-backend/internal/repository"
	"github.com/hanseilab/hansei-backend/internal/store"
	"github.com/rs/zerolog"
)

// testEnv is the shared fixture: a seeded in-memory store with every
// repository on top of it.
type testEnv struct {
	store       *store.MemoryStore
	students    *repository.StudentRepository
	reflections *repository.ReflectionRepository
	feedback    *repository.FeedbackRepository
	meta        *repository.MetaRepository
	codes       *repository.CodeRepository
	sessions    *repository.SessionRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	st := store.NewMemoryStore()
	if err := repository.EnsureSchema(st); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	locks := store.NewKeyedMutex()
	return &testEnv{
		store:       st,
		students:    repository.NewStudentRepository(st),
		reflections: repository.NewReflectionRepository(st, time.UTC),
		feedback:    repository.NewFeedbackRepository(st, locks),
		meta:        repository.NewMetaRepository(st, locks),
		codes:       repository.NewCodeRepository(st),
		sessions:    repository.NewSessionRepository(st),
	}
}

func (e *testEnv) seed(t *testing.T, sheet string, rows ...store.Row) {
	t.Helper()
	for _, row := range rows {
		if err := e.store.AppendRow(sheet, row); err != nil {
			t.Fatalf("seed %s: %v", sheet, err)
		}
	}
}

func testConfig() *config.Config {
	return &config.Config{
		AuthMode:                  config.AuthModeTrust,
		AllowDuplicateReflections: true,
		Timezone:                  "UTC",
	}
}

func nopLogger() zerolog.Logger {
	return zerolog.Nop()
}
