package services

import (
	"math"
	"time"

	"github.com/language-gems/analytics-service/internal/models"
)

// computeOverview derives the per-assignment completion, time and
// success statistics. Pure over the request scope; the branching by
// assignment kind decides which record/session population feeds each
// metric.
func computeOverview(scope *requestScope) *models.AssignmentOverview {
	overview := &models.AssignmentOverview{
		AssignmentID:    scope.assignment.ID,
		AssignmentTitle: scope.assignment.Title,
		ClassName:       scope.className,
		Kind:            scope.kind,
		TotalStudents:   len(scope.roster),
		GeneratedAt:     scope.generatedAt,
	}

	completion := computeCompletion(scope)
	overview.CompletedStudents = completion.completed
	overview.InProgressStudents = completion.inProgress
	overview.NotStartedStudents = overview.TotalStudents - completion.completed - completion.inProgress
	if overview.NotStartedStudents < 0 {
		overview.NotStartedStudents = 0
	}
	if overview.TotalStudents > 0 {
		overview.CompletionRate = int(math.Round(float64(overview.CompletedStudents) / float64(overview.TotalStudents) * 100))
	}
	overview.AverageTimeMinutes = completion.averageTimeMinutes

	switch scope.kind {
	case models.KindAssessment:
		overview.ClassSuccessScore, overview.StudentsNeedingHelp = assessmentSuccess(scope)
	case models.KindSkillsGrammar, models.KindMixedMode:
		overview.ClassSuccessScore, overview.StudentsNeedingHelp = skillsSuccess(scope)
	default:
		overview.ClassSuccessScore, overview.StudentsNeedingHelp = vocabularySuccess(scope)
	}

	return overview
}

type completionStats struct {
	completed          int
	inProgress         int
	averageTimeMinutes int
}

func computeCompletion(scope *requestScope) completionStats {
	if scope.kind == models.KindAssessment {
		return recordCompletion(scope)
	}
	return sessionCompletion(scope)
}

// recordCompletion derives per-student status from the canonical
// records: a student counts as completed once any attempt completed.
func recordCompletion(scope *requestScope) completionStats {
	var stats completionStats

	totalSeconds, timed := 0, 0
	for _, records := range scope.studentRecords() {
		done := false
		for _, rec := range records {
			if rec.Status == models.StatusCompleted {
				done = true
				totalSeconds += rec.TimeSpentSeconds
				timed++
			}
		}
		if done {
			stats.completed++
		} else {
			stats.inProgress++
		}
	}

	if timed > 0 {
		stats.averageTimeMinutes = int(math.Round(float64(totalSeconds) / float64(timed) / 60))
	}
	return stats
}

// sessionCompletion derives per-student status from game sessions and,
// for skills assignments, grammar attempts.
func sessionCompletion(scope *requestScope) completionStats {
	type activity struct {
		completed bool
	}
	students := make(map[string]*activity)

	touch := func(studentID string) *activity {
		a, ok := students[studentID]
		if !ok {
			a = &activity{}
			students[studentID] = a
		}
		return a
	}

	totalSeconds, timed := 0, 0
	for _, sess := range scope.gameSessions {
		a := touch(sess.StudentID)
		if sess.Completed() {
			a.completed = true
			totalSeconds += sess.DurationSeconds
			timed++
		}
	}

	if scope.kind == models.KindSkillsGrammar || scope.kind == models.KindMixedMode {
		for _, att := range scope.grammarAttempts {
			a := touch(att.StudentID)
			if att.CompletedAt != nil {
				a.completed = true
				totalSeconds += att.DurationSeconds
				timed++
			}
		}
	}

	var stats completionStats
	for _, a := range students {
		if a.completed {
			stats.completed++
		} else {
			stats.inProgress++
		}
	}
	if timed > 0 {
		stats.averageTimeMinutes = int(math.Round(float64(totalSeconds) / float64(timed) / 60))
	}
	return stats
}

// assessmentSuccess averages each student's best attempt percentage.
// Ties on percentage resolve to the most recently completed attempt.
// A student needs help when their best score is under 50.
func assessmentSuccess(scope *requestScope) (successScore, needingHelp int) {
	byStudent := scope.studentRecords()
	if len(byStudent) == 0 {
		return 0, 0
	}

	var sum float64
	for _, records := range byStudent {
		best := bestRecord(records)
		sum += best.ScorePercentage
		if best.ScorePercentage < 50 {
			needingHelp++
		}
	}
	return int(math.Round(sum / float64(len(byStudent)))), needingHelp
}

// bestRecord picks the highest-percentage attempt, breaking ties by
// the most recent completion timestamp.
func bestRecord(records []models.NormalizedResult) models.NormalizedResult {
	best := records[0]
	for _, rec := range records[1:] {
		switch {
		case rec.ScorePercentage > best.ScorePercentage:
			best = rec
		case rec.ScorePercentage == best.ScorePercentage && laterCompletion(rec.CompletedAt, best.CompletedAt):
			best = rec
		}
	}
	return best
}

func laterCompletion(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.After(*b)
}

// skillsSuccess accumulates correct/attempted over grammar attempts
// and, for mixed-mode assignments, vocabulary game sessions too.
func skillsSuccess(scope *requestScope) (successScore, needingHelp int) {
	type tally struct{ correct, attempted int }
	byStudent := make(map[string]*tally)

	add := func(studentID string, correct, attempted int) {
		t, ok := byStudent[studentID]
		if !ok {
			t = &tally{}
			byStudent[studentID] = t
		}
		t.correct += correct
		t.attempted += attempted
	}

	for _, att := range scope.grammarAttempts {
		add(att.StudentID, att.CorrectCount, att.TotalCount)
	}
	if scope.kind == models.KindMixedMode {
		for _, sess := range scope.gameSessions {
			add(sess.StudentID, sess.WordsCorrect, sess.WordsAttempted)
		}
	}

	totalCorrect, totalAttempted := 0, 0
	for _, t := range byStudent {
		totalCorrect += t.correct
		totalAttempted += t.attempted
		if t.attempted > 0 && ratioPercent(t.correct, t.attempted) < 50 {
			needingHelp++
		}
	}
	return ratioPercent(totalCorrect, totalAttempted), needingHelp
}

// vocabularySuccess accumulates the per-session word counters; gem
// rarity plays no part here.
func vocabularySuccess(scope *requestScope) (successScore, needingHelp int) {
	type tally struct{ correct, attempted int }
	byStudent := make(map[string]*tally)

	totalCorrect, totalAttempted := 0, 0
	for _, sess := range scope.gameSessions {
		t, ok := byStudent[sess.StudentID]
		if !ok {
			t = &tally{}
			byStudent[sess.StudentID] = t
		}
		t.correct += sess.WordsCorrect
		t.attempted += sess.WordsAttempted
		totalCorrect += sess.WordsCorrect
		totalAttempted += sess.WordsAttempted
	}

	for _, t := range byStudent {
		if t.attempted > 0 && ratioPercent(t.correct, t.attempted) < 50 {
			needingHelp++
		}
	}
	return ratioPercent(totalCorrect, totalAttempted), needingHelp
}

// ratioPercent is round(n/d*100) with a zero denominator guarded to 0.
func ratioPercent(n, d int) int {
	if d <= 0 {
		return 0
	}
	return int(math.Round(float64(n) / float64(d) * 100))
}
