// simulation/simulation.go
package simulation

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aeroclass/backend/internal/domain/exam"
	"github.com/aeroclass/backend/internal/domain/question"
	"github.com/aeroclass/backend/internal/domain/trigger"
	"github.com/aeroclass/backend/internal/id"
	"github.com/aeroclass/backend/internal/service"
	"github.com/aeroclass/backend/internal/store"
	"github.com/aeroclass/backend/internal/worker"
)

// StudentReport is the outcome of one simulated student working through
// the test catalog.
type StudentReport struct {
	UserID   string
	Statuses map[string]service.TestStatus
	Err      error
}

// Run drives a fleet of simulated students against an in-memory store:
// each one logs flights, submits answers and reviews results through the
// same service the HTTP handlers use. Students run concurrently on a
// worker pool, which also exercises the per-(user, test) submit
// serialization under load.
func Run(ctx context.Context, logger *slog.Logger, students int) error {
	// A plain :memory: DSN would give every pooled connection its own
	// database, so the simulation runs against a throwaway file.
	dir, err := os.MkdirTemp("", "aeroclass-sim")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	db, err := store.NewSQLite(filepath.Join(dir, "sim.db"))
	if err != nil {
		return fmt.Errorf("opening simulation store: %w", err)
	}
	defer db.Close()

	if err := seed(ctx, db); err != nil {
		return fmt.Errorf("seeding catalog: %w", err)
	}

	svc := service.NewSubmissionService(db, db, logger)

	pool := worker.NewPool[StudentReport](3, students)
	for i := 0; i < students; i++ {
		userID := id.GenerateID()
		// Every second student has logged enough hours to unlock the
		// gated test.
		hours := 2.0
		if i%2 == 0 {
			hours = 12.0
		}
		pool.Submit(userID, func() StudentReport {
			return simulateStudent(ctx, db, svc, userID, hours)
		})
	}
	pool.Close()

	for i := 0; i < students; i++ {
		result := <-pool.Results()
		report := result.Output
		if report.Err != nil {
			logger.Error("student run failed", "user_id", report.UserID, "error", report.Err)
			continue
		}
		logger.Info("student run finished", "user_id", report.UserID, "statuses", report.Statuses)
	}
	return nil
}

func seed(ctx context.Context, db *store.SQLiteStore) error {
	basics := &exam.Test{
		ID:             "basics",
		Names:          map[string]string{"en": "Aviation Basics", "de": "Grundlagen der Luftfahrt"},
		PassThreshold:  50,
		RetryDelayDays: 1,
	}
	navigation := &exam.Test{
		ID:             "navigation",
		Names:          map[string]string{"en": "Navigation"},
		PassThreshold:  75,
		RetryDelayDays: 3,
		Triggers: []trigger.Trigger{
			{Stat: "flight_hours", Op: trigger.OpGTE, Threshold: 10, Description: "Log {threshold} flight hours"},
		},
	}
	for _, t := range []*exam.Test{basics, navigation} {
		if err := db.SaveTest(ctx, t); err != nil {
			return err
		}
	}

	content := &exam.Content{
		TestID: "basics",
		Languages: map[string][]question.Question{
			"en": {
				{
					ID:            "b1",
					Kind:          question.KindSingleChoice,
					Prompt:        "Which instrument shows altitude?",
					Options:       []string{"Altimeter", "Airspeed indicator", "Compass"},
					CorrectOption: 0,
				},
				{
					ID:          "b2",
					Kind:        question.KindTrueFalse,
					Prompt:      "Lift increases with airspeed",
					CorrectBool: true,
				},
			},
		},
		Disclaimer: "Practice material only, not an official examination.",
	}
	navContent := &exam.Content{
		TestID: "navigation",
		Languages: map[string][]question.Question{
			"en": {
				{
					ID:     "n1",
					Kind:   question.KindMatching,
					Prompt: "Match the abbreviation to its meaning",
					Pairs: []question.Pair{
						{Left: "VOR", Right: "VHF omnidirectional range"},
						{Left: "NDB", Right: "Non-directional beacon"},
					},
				},
			},
		},
	}
	for _, c := range []*exam.Content{content, navContent} {
		if err := db.SaveContent(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func simulateStudent(ctx context.Context, db *store.SQLiteStore, svc *service.SubmissionService, userID string, hours float64) StudentReport {
	report := StudentReport{UserID: userID, Statuses: make(map[string]service.TestStatus)}

	if err := db.AddFlightStats(ctx, userID, map[string]float64{"flight_hours": hours, "landings": 4}); err != nil {
		report.Err = err
		return report
	}

	answers := question.AnswerSet{
		"b1": question.NewChoice("Altimeter"),
		"b2": question.NewBool(true),
	}
	if _, err := svc.SubmitAndGrade(ctx, userID, "basics", "en", answers); err != nil {
		report.Err = err
		return report
	}
	if _, err := svc.Review(ctx, userID, "basics", "en"); err != nil {
		report.Err = err
		return report
	}

	list, err := svc.AvailabilityForUser(ctx, userID, "en")
	if err != nil {
		report.Err = err
		return report
	}
	for _, av := range list {
		report.Statuses[av.TestID] = av.Status
	}
	return report
}
