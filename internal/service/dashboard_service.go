package service

import (
	"errors"
	"sort"
	"time"

	"github.com/hanseilab/hansei-backend/internal/highlight"
	"github.com/hanseilab/hansei-backend/internal/model"
	"github.com/hanseilab/hansei-backend/internal/repository"
	"github.com/rs/zerolog"
)

// DashboardService assembles the teacher views: the per-date submission
// roster and the per-student card.
type DashboardService struct {
	students    *repository.StudentRepository
	reflections *repository.ReflectionRepository
	feedback    *repository.FeedbackRepository
	loc         *time.Location
	log         zerolog.Logger
}

// NewDashboardService creates a DashboardService.
func NewDashboardService(
	students *repository.StudentRepository,
	reflections *repository.ReflectionRepository,
	feedback *repository.FeedbackRepository,
	loc *time.Location,
	log zerolog.Logger,
) *DashboardService {
	return &DashboardService{
		students:    students,
		reflections: reflections,
		feedback:    feedback,
		loc:         loc,
		log:         log.With().Str("component", "dashboard_service").Logger(),
	}
}

// Dashboard returns the roster with per-student submission status for the
// given date (nobody shows as submitted when date is empty) and the
// distinct class dates across all reflections, most recent first. The
// roster join is linear; the store has no index to do better with.
func (s *DashboardService) Dashboard(date string) (*model.DashboardResponse, error) {
	students, err := s.students.List()
	if err != nil {
		return nil, err
	}

	var submissions []model.Reflection
	if date != "" {
		submissions, err = s.reflections.ByDate(repository.CanonicalDate(date, s.loc))
		if err != nil {
			return nil, err
		}
	}

	roster := make([]model.DashboardStudent, 0, len(students))
	for _, st := range students {
		entry := model.DashboardStudent{StudentID: st.StudentID, Name: st.Name}
		for _, sub := range submissions {
			if sub.StudentID == st.StudentID {
				entry.Submitted = true
				entry.ReflectionID = sub.ReflectionID
				break
			}
		}
		roster = append(roster, entry)
	}

	dates, err := s.distinctDates()
	if err != nil {
		return nil, err
	}

	return &model.DashboardResponse{Students: roster, Dates: dates}, nil
}

// StudentCard returns one student's full history, each reflection enriched
// with its feedback, plus the code-label frequency across the history. Date
// filtering is the caller's concern.
func (s *DashboardService) StudentCard(studentID string) (*model.StudentCardResponse, error) {
	refs, err := s.reflections.ByStudent(studentID)
	if err != nil {
		return nil, err
	}

	history := make([]model.StudentCardEntry, 0, len(refs))
	highlightSets := make([][]model.Highlight, 0, len(refs))
	for _, ref := range refs {
		entry := model.StudentCardEntry{Reflection: ref}
		fb, err := s.feedback.For(ref.ReflectionID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if fb != nil {
			entry.Feedback = fb
			highlightSets = append(highlightSets, fb.Highlights)
		}
		history = append(history, entry)
	}

	return &model.StudentCardResponse{
		History:       history,
		CodeFrequency: highlight.Frequency(highlightSets...),
	}, nil
}

func (s *DashboardService) distinctDates() ([]string, error) {
	all, err := s.reflections.All()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	dates := make([]string, 0)
	for _, ref := range all {
		if ref.ClassDate == "" || seen[ref.ClassDate] {
			continue
		}
		seen[ref.ClassDate] = true
		dates = append(dates, ref.ClassDate)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates, nil
}
