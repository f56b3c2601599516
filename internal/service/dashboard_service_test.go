package service

import (
	"testing"
	"time"

	"github.com/hanseilab/hansei-backend/internal/model"
	"github.com/hanseilab/hansei-backend/internal/repository"
	"github.com/hanseilab/hansei-backend/internal/store"
)

func newDashboardService(env *testEnv) *DashboardService {
	return NewDashboardService(env.students, env.reflections, env.feedback, time.UTC, nopLogger())
}

func seedRoster(t *testing.T, env *testEnv) {
	t.Helper()
	env.seed(t, repository.SheetStudents,
		store.Row{"student_id": "S1", "name": "Alice", "class_code": "CLASS_A", "active": "true"},
		store.Row{"student_id": "S2", "name": "Bob", "class_code": "CLASS_A", "active": "true"},
	)
}

func insertReflection(t *testing.T, env *testEnv, id, student, date string) {
	t.Helper()
	err := env.reflections.Insert(model.Reflection{
		ReflectionID: id, StudentID: student, ClassDate: date, SubmissionTime: time.Now(),
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
}

func TestDashboardRosterJoin(t *testing.T) {
	env := newTestEnv(t)
	seedRoster(t, env)
	insertReflection(t, env, "r1", "S1", "2024-01-02")
	insertReflection(t, env, "r2", "S1", "2024-01-05")
	svc := newDashboardService(env)

	resp, err := svc.Dashboard("2024-01-02")
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if len(resp.Students) != 2 {
		t.Fatalf("roster should list every student, got %d", len(resp.Students))
	}
	alice, bob := resp.Students[0], resp.Students[1]
	if !alice.Submitted || alice.ReflectionID != "r1" {
		t.Fatalf("S1 should show the submission for the selected date: %+v", alice)
	}
	if bob.Submitted || bob.ReflectionID != "" {
		t.Fatalf("S2 has not submitted: %+v", bob)
	}
}

func TestDashboardWithoutDate(t *testing.T) {
	env := newTestEnv(t)
	seedRoster(t, env)
	insertReflection(t, env, "r1", "S1", "2024-01-02")
	svc := newDashboardService(env)

	resp, err := svc.Dashboard("")
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	for _, st := range resp.Students {
		if st.Submitted {
			t.Fatalf("no date selected means nobody is submitted: %+v", st)
		}
	}
}

func TestDashboardDistinctDatesDescending(t *testing.T) {
	env := newTestEnv(t)
	seedRoster(t, env)
	insertReflection(t, env, "r1", "S1", "2024-01-02")
	insertReflection(t, env, "r2", "S1", "2024-01-05")
	insertReflection(t, env, "r3", "S2", "2024-01-02")
	svc := newDashboardService(env)

	resp, err := svc.Dashboard("")
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	want := []string{"2024-01-05", "2024-01-02"}
	if len(resp.Dates) != len(want) {
		t.Fatalf("dates must be distinct: %v", resp.Dates)
	}
	for i := range want {
		if resp.Dates[i] != want[i] {
			t.Fatalf("dates out of order: %v", resp.Dates)
		}
	}
}

func TestDashboardCanonicalizesRequestedDate(t *testing.T) {
	env := newTestEnv(t)
	seedRoster(t, env)
	insertReflection(t, env, "r1", "S1", "2024-01-02")
	svc := newDashboardService(env)

	resp, err := svc.Dashboard("2024/01/02")
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if !resp.Students[0].Submitted {
		t.Fatalf("slash-formatted date should match the stored day")
	}
}

func TestStudentCard(t *testing.T) {
	env := newTestEnv(t)
	seedRoster(t, env)
	insertReflection(t, env, "r1", "S1", "2024-01-02")
	insertReflection(t, env, "r2", "S1", "2024-01-05")
	insertReflection(t, env, "r3", "S2", "2024-01-02")

	err := env.feedback.Upsert("r1", store.Row{
		"reflection_id":   "r1",
		"teacher_comment": "good planning",
		"highlights_json": `[{"id":1,"text":"a","code_id":"PLAN_01","code_label":"Goal setting"},{"id":2,"text":"b","code_id":"MON_01","code_label":"Comprehension check"}]`,
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	err = env.feedback.Upsert("r2", store.Row{
		"reflection_id":   "r2",
		"teacher_comment": "keep going",
		"highlights_json": `[{"id":3,"text":"c","code_id":"PLAN_01","code_label":"Goal setting"}]`,
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	svc := newDashboardService(env)
	card, err := svc.StudentCard("S1")
	if err != nil {
		t.Fatalf("StudentCard: %v", err)
	}
	if len(card.History) != 2 {
		t.Fatalf("card should only hold the student's reflections, got %d", len(card.History))
	}
	// Most recent first, feedback joined.
	if card.History[0].ReflectionID != "r2" || card.History[0].Feedback == nil {
		t.Fatalf("unexpected first entry: %+v", card.History[0])
	}
	if card.History[0].Feedback.TeacherComment != "keep going" {
		t.Fatalf("feedback not joined: %+v", card.History[0].Feedback)
	}

	if card.CodeFrequency["Goal setting"] != 2 || card.CodeFrequency["Comprehension check"] != 1 {
		t.Fatalf("unexpected code frequency: %v", card.CodeFrequency)
	}
}

func TestStudentCardWithoutFeedback(t *testing.T) {
	env := newTestEnv(t)
	seedRoster(t, env)
	insertReflection(t, env, "r1", "S1", "2024-01-02")

	svc := newDashboardService(env)
	card, err := svc.StudentCard("S1")
	if err != nil {
		t.Fatalf("StudentCard: %v", err)
	}
	if card.History[0].Feedback != nil {
		t.Fatalf("no feedback should join as nil, got %+v", card.History[0].Feedback)
	}
	if len(card.CodeFrequency) != 0 {
		t.Fatalf("no highlights means empty frequency: %v", card.CodeFrequency)
	}
}
