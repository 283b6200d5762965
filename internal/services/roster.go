package services

import (
	"math"
	"sort"
	"time"

	"github.com/language-gems/analytics-service/internal/models"
)

const (
	highFailureThreshold  = 30
	longSessionMinutes    = 60
	stalledSessionMinutes = 10

	struggleMinExposures = 2
	struggleWeakShare    = 50
	struggleWordLimit    = 3
)

// computeRoster builds the per-student progress list over every
// enrolled student, including the ones with no activity yet. Sorted by
// failure rate descending so the highest-need students surface first.
func computeRoster(scope *requestScope) []models.StudentProgress {
	records := scope.studentRecords()
	sessions := scope.studentSessions()
	gems := scope.studentGemEvents()
	attempts := studentGrammarAttempts(scope)

	out := make([]models.StudentProgress, 0, len(scope.roster))
	for _, entry := range scope.roster {
		p := models.StudentProgress{
			StudentID:   entry.StudentID,
			StudentName: entry.DisplayName,
			Status:      models.StatusNotStarted,
		}

		if scope.kind == models.KindAssessment {
			applyRecordProgress(&p, records[entry.StudentID])
		} else {
			applySessionProgress(&p, scope.kind, sessions[entry.StudentID], attempts[entry.StudentID])
		}

		applyGemMetrics(&p, gems[entry.StudentID])
		p.InterventionFlag = interventionFlag(p)
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].FailureRate > out[j].FailureRate
	})
	return out
}

func studentGrammarAttempts(scope *requestScope) map[string][]models.GrammarAttempt {
	byStudent := make(map[string][]models.GrammarAttempt)
	for _, att := range scope.grammarAttempts {
		byStudent[att.StudentID] = append(byStudent[att.StudentID], att)
	}
	return byStudent
}

// applyRecordProgress fills status, time, score and last attempt from
// the student's canonical records. Success score is the best attempt
// percentage, matching the overview's assessment branch.
func applyRecordProgress(p *models.StudentProgress, records []models.NormalizedResult) {
	if len(records) == 0 {
		return
	}
	p.Status = models.StatusInProgress

	seconds := 0
	for _, rec := range records {
		seconds += rec.TimeSpentSeconds
		if rec.Status == models.StatusCompleted {
			p.Status = models.StatusCompleted
		}
		if rec.CompletedAt != nil && (p.LastAttempt == nil || rec.CompletedAt.After(*p.LastAttempt)) {
			t := *rec.CompletedAt
			p.LastAttempt = &t
		}
	}
	p.TimeSpentMinutes = seconds / 60

	best := bestRecord(records)
	p.SuccessScore = int(math.Round(best.ScorePercentage))
}

// applySessionProgress fills the same fields from game sessions and,
// for skills assignments, grammar attempts.
func applySessionProgress(p *models.StudentProgress, kind models.AssignmentKind, sessions []models.GameSession, attempts []models.GrammarAttempt) {
	includeGrammar := kind == models.KindSkillsGrammar || kind == models.KindMixedMode
	// Pure skills assignments score on grammar attempts only; mixed
	// mode unions both populations.
	includeSessions := kind != models.KindSkillsGrammar

	seconds := 0
	correct, attempted := 0, 0

	for _, sess := range sessions {
		p.Status = models.StatusInProgress
		seconds += sess.DurationSeconds
		if includeSessions {
			correct += sess.WordsCorrect
			attempted += sess.WordsAttempted
		}
		if sess.Completed() {
			p.Status = models.StatusCompleted
		}
		last := sess.StartedAt
		if sess.EndedAt != nil {
			last = *sess.EndedAt
		}
		if p.LastAttempt == nil || last.After(*p.LastAttempt) {
			t := last
			p.LastAttempt = &t
		}
	}

	if includeGrammar {
		for _, att := range attempts {
			if p.Status == models.StatusNotStarted {
				p.Status = models.StatusInProgress
			}
			seconds += att.DurationSeconds
			correct += att.CorrectCount
			attempted += att.TotalCount
			if att.CompletedAt != nil {
				p.Status = models.StatusCompleted
				if p.LastAttempt == nil || att.CompletedAt.After(*p.LastAttempt) {
					t := *att.CompletedAt
					p.LastAttempt = &t
				}
			}
		}
	}

	p.TimeSpentMinutes = seconds / 60
	p.SuccessScore = ratioPercent(correct, attempted)
}

// applyGemMetrics derives both retrieval metrics plus the struggle
// word list from the student's gem events. WeakRetrievalPercent counts
// common and uncommon events; FailureRate counts only common ones.
func applyGemMetrics(p *models.StudentProgress, events []models.GemEvent) {
	if len(events) == 0 {
		return
	}

	weak, failures := 0, 0
	for _, ev := range events {
		if ev.GemRarity.Weak() {
			weak++
		}
		if ev.GemRarity == models.RarityCommon {
			failures++
		}
	}
	p.WeakRetrievalPercent = ratioPercent(weak, len(events))
	p.FailureRate = ratioPercent(failures, len(events))
	p.KeyStruggleWords = struggleWords(events)
}

// struggleWords picks the words a student keeps retrieving weakly:
// at least two exposures with a weak share above half, top three by
// weak share.
func struggleWords(events []models.GemEvent) []string {
	type wordTally struct {
		word      string
		exposures int
		weak      int
	}
	byKey := make(map[string]*wordTally)
	for _, ev := range events {
		key, _, ok := ev.VocabularyKey()
		if !ok {
			continue
		}
		t, found := byKey[key]
		if !found {
			t = &wordTally{word: ev.WordText}
			byKey[key] = t
		}
		if t.word == "" {
			t.word = ev.WordText
		}
		t.exposures++
		if ev.GemRarity.Weak() {
			t.weak++
		}
	}

	type candidate struct {
		word      string
		weakShare int
	}
	var candidates []candidate
	for _, t := range byKey {
		if t.exposures < struggleMinExposures {
			continue
		}
		share := ratioPercent(t.weak, t.exposures)
		if share > struggleWeakShare {
			candidates = append(candidates, candidate{word: t.word, weakShare: share})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].weakShare != candidates[j].weakShare {
			return candidates[i].weakShare > candidates[j].weakShare
		}
		return candidates[i].word < candidates[j].word
	})

	if len(candidates) > struggleWordLimit {
		candidates = candidates[:struggleWordLimit]
	}
	words := make([]string, 0, len(candidates))
	for _, c := range candidates {
		words = append(words, c.word)
	}
	return words
}

// interventionFlag applies the first matching rule, or none.
func interventionFlag(p models.StudentProgress) *models.InterventionFlag {
	flag := func(f models.InterventionFlag) *models.InterventionFlag { return &f }

	switch {
	case p.FailureRate > highFailureThreshold:
		return flag(models.FlagHighFailure)
	case p.Status == models.StatusInProgress && p.TimeSpentMinutes > longSessionMinutes:
		return flag(models.FlagUnusuallyLong)
	case p.Status == models.StatusInProgress && p.TimeSpentMinutes > stalledSessionMinutes && p.LastAttempt == nil:
		return flag(models.FlagStoppedMidway)
	default:
		return nil
	}
}

// computeWordStruggles reports every student's history with one
// vocabulary item, worst first. Students with no exposures to the word
// are omitted.
func computeWordStruggles(roster []models.RosterEntry, events []models.GemEvent, vocabularyID string) []models.StudentWordStruggle {
	names := make(map[string]string, len(roster))
	for _, entry := range roster {
		names[entry.StudentID] = entry.DisplayName
	}

	type tally struct {
		exposures int
		weak      int
		strong    int
		last      time.Time
	}
	byStudent := make(map[string]*tally)
	for _, ev := range events {
		key, _, ok := ev.VocabularyKey()
		if !ok || key != vocabularyID || ev.StudentID == "" {
			continue
		}
		t, found := byStudent[ev.StudentID]
		if !found {
			t = &tally{}
			byStudent[ev.StudentID] = t
		}
		t.exposures++
		if ev.GemRarity.Weak() {
			t.weak++
		} else {
			t.strong++
		}
		if ev.CreatedAt.After(t.last) {
			t.last = ev.CreatedAt
		}
	}

	out := make([]models.StudentWordStruggle, 0, len(byStudent))
	for studentID, t := range byStudent {
		name, ok := names[studentID]
		if !ok {
			name = "Unknown"
		}
		rate := ratioPercent(t.weak, t.exposures)
		out = append(out, models.StudentWordStruggle{
			StudentID:               studentID,
			StudentName:             name,
			Exposures:               t.exposures,
			StrongRetrievals:        t.strong,
			WeakRetrievals:          t.weak,
			WeakRetrievalRate:       rate,
			LastAttempt:             t.last,
			RecommendedIntervention: recommendedIntervention(rate),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].WeakRetrievalRate != out[j].WeakRetrievalRate {
			return out[i].WeakRetrievalRate > out[j].WeakRetrievalRate
		}
		return out[i].StudentID < out[j].StudentID
	})
	return out
}

func recommendedIntervention(weakRate int) string {
	switch {
	case weakRate > 60:
		return "Individual re-assignment of this word only"
	case weakRate > 40:
		return "Small group work on this concept"
	default:
		return "Monitor progress"
	}
}
