// Command setup initializes the workbook: it creates every collection with
// its header row and, when the workbook is brand new, seeds the meta
// entries, a sample roster, and the starter code set. Safe to run against
// an existing workbook — populated sheets are left untouched.
package main

import (
	"encoding/json"

	"github.com/hanseilab/hansei-backend/internal/config"
	"github.com/hanseilab/hansei-backend/internal/logger"
	"github.com/hanseilab/hansei-backend/internal/model"
	"github.com/hanseilab/hansei-backend/internal/repository"
	"github.com/hanseilab/hansei-backend/internal/store"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	st, err := store.OpenWorkbook(cfg.WorkbookPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open workbook")
	}
	defer st.Close()

	if err := repository.EnsureSchema(st); err != nil {
		log.Fatal().Err(err).Msg("Failed to create sheets")
	}

	seeded, err := seed(st)
	if err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}

	log.Info().
		Str("workbook", cfg.WorkbookPath).
		Bool("seeded", seeded).
		Msg("Workbook setup complete")
}

// seed populates empty sheets with starter data and reports whether
// anything was written.
func seed(st store.TabularStore) (bool, error) {
	defaultQuestions, err := json.Marshal([]model.Question{
		{ID: "q1", Type: "scale", Label: "How focused were you today?", Min: 1, Max: 5},
		{ID: "q2", Type: "text", Label: "What did you come to understand?"},
	})
	if err != nil {
		return false, err
	}

	seeded := false

	metaRows, err := st.ListRows(repository.SheetMeta)
	if err != nil {
		return seeded, err
	}
	if len(metaRows) == 0 {
		rows := []store.Row{
			{"key": repository.MetaTeacherSecret, "value": "teacher123"},
			{"key": repository.MetaDefaultQuestions, "value": string(defaultQuestions)},
		}
		for _, row := range rows {
			if err := st.AppendRow(repository.SheetMeta, row); err != nil {
				return seeded, err
			}
		}
		seeded = true
	}

	studentRows, err := st.ListRows(repository.SheetStudents)
	if err != nil {
		return seeded, err
	}
	if len(studentRows) == 0 {
		rows := []store.Row{
			{"student_id": "S1001", "name": "Taro Yamada", "class_code": "CLASS_A", "active": "true"},
			{"student_id": "S1002", "name": "Hanako Sato", "class_code": "CLASS_A", "active": "true"},
		}
		for _, row := range rows {
			if err := st.AppendRow(repository.SheetStudents, row); err != nil {
				return seeded, err
			}
		}
		seeded = true
	}

	codeRows, err := st.ListRows(repository.SheetCodes)
	if err != nil {
		return seeded, err
	}
	if len(codeRows) == 0 {
		rows := []store.Row{
			{"code_id": "PLAN_01", "category": "Planning", "label": "Goal setting", "color": "#FFCDD2"},
			{"code_id": "MON_01", "category": "Monitoring", "label": "Comprehension check", "color": "#C8E6C9"},
		}
		for _, row := range rows {
			if err := st.AppendRow(repository.SheetCodes, row); err != nil {
				return seeded, err
			}
		}
		seeded = true
	}

	return seeded, nil
}
