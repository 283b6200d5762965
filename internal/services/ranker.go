package services

import (
	"fmt"
	"sort"

	"github.com/language-gems/analytics-service/internal/models"
)

// highConfidenceAttempts is the attempt count above which a word's
// weak-retrieval rate is trusted on its own. Below it a word can only
// surface as an emerging problem, never dominate the ranking.
const highConfidenceAttempts = 5

// emergingProblemRate is the weak-retrieval rate that promotes a
// low-volume word into the emerging-problem tier.
const emergingProblemRate = 50

type wordStats struct {
	key      string
	word     string
	trans    string
	custom   bool
	total    int
	weak     int
	strong   int
	weakRate int
}

// rankWordDifficulty groups gem events by vocabulary item and produces
// the confidence-tiered ranking: trusted high-volume words first, then
// low-volume words already showing trouble, then the long tail.
func rankWordDifficulty(events []models.GemEvent) []models.WordDifficulty {
	stats := collectWordStats(events)

	var tier1, tier2, tier3 []wordStats
	for _, w := range stats {
		switch {
		case w.total >= highConfidenceAttempts:
			tier1 = append(tier1, w)
		case w.weakRate >= emergingProblemRate:
			tier2 = append(tier2, w)
		default:
			tier3 = append(tier3, w)
		}
	}

	sort.SliceStable(tier1, func(i, j int) bool {
		if tier1[i].weakRate != tier1[j].weakRate {
			return tier1[i].weakRate > tier1[j].weakRate
		}
		return tier1[i].total > tier1[j].total
	})
	sort.SliceStable(tier2, func(i, j int) bool {
		if tier2[i].total != tier2[j].total {
			return tier2[i].total > tier2[j].total
		}
		return tier2[i].weakRate > tier2[j].weakRate
	})
	sort.SliceStable(tier3, func(i, j int) bool {
		return tier3[i].weakRate > tier3[j].weakRate
	})

	ranked := make([]models.WordDifficulty, 0, len(stats))
	for _, w := range tier1 {
		ranked = append(ranked, difficultyEntry(w, len(ranked)+1))
	}
	for _, w := range tier2 {
		ranked = append(ranked, difficultyEntry(w, len(ranked)+1))
	}
	for _, w := range tier3 {
		ranked = append(ranked, difficultyEntry(w, len(ranked)+1))
	}
	return ranked
}

// collectWordStats aggregates events per vocabulary item. Events with
// no vocabulary link are skipped. Output order is deterministic.
func collectWordStats(events []models.GemEvent) []wordStats {
	byKey := make(map[string]*wordStats)
	for _, ev := range events {
		key, custom, ok := ev.VocabularyKey()
		if !ok {
			continue
		}
		w, found := byKey[key]
		if !found {
			w = &wordStats{key: key, word: ev.WordText, trans: ev.TranslationText, custom: custom}
			byKey[key] = w
		}
		if w.word == "" {
			w.word = ev.WordText
		}
		if w.trans == "" {
			w.trans = ev.TranslationText
		}
		w.total++
		if ev.GemRarity.Weak() {
			w.weak++
		} else {
			w.strong++
		}
	}

	keys := make([]string, 0, len(byKey))
	for key := range byKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]wordStats, 0, len(keys))
	for _, key := range keys {
		w := byKey[key]
		w.weakRate = ratioPercent(w.weak, w.total)
		out = append(out, *w)
	}
	return out
}

func difficultyEntry(w wordStats, rank int) models.WordDifficulty {
	return models.WordDifficulty{
		Rank:                 rank,
		WordText:             w.word,
		TranslationText:      w.trans,
		TotalAttempts:        w.total,
		WeakRetrievalCount:   w.weak,
		StrongRetrievalCount: w.strong,
		WeakRetrievalRate:    w.weakRate,
		ActionableInsight:    actionableInsight(w.weakRate, w.total),
		InsightLevel:         insightLevel(w.weakRate, w.total),
		IsCustomVocabulary:   w.custom,
	}
}

// actionableInsight renders the teacher-facing recommendation. The
// thresholds are layered per tier: a rate is only trusted at full
// strength once the word has enough attempts behind it.
func actionableInsight(weakRate, attempts int) string {
	if attempts >= highConfidenceAttempts {
		switch {
		case weakRate >= 70:
			return "Major class problem. Requires full lesson."
		case weakRate >= 50:
			return "Significant issue. Plan intervention."
		case weakRate >= 30:
			return "Monitor closely. Review if needed."
		default:
			return "Class performing well."
		}
	}
	if weakRate >= emergingProblemRate {
		return fmt.Sprintf("Emerging problem (%s). Limited data.", attemptCount(attempts))
	}
	return fmt.Sprintf("Insufficient data (%s).", attemptCount(attempts))
}

func insightLevel(weakRate, attempts int) models.InsightLevel {
	if attempts >= highConfidenceAttempts {
		switch {
		case weakRate >= 70:
			return models.InsightProblem
		case weakRate >= 50:
			return models.InsightReview
		case weakRate >= 30:
			return models.InsightMonitor
		default:
			return models.InsightSuccess
		}
	}
	if weakRate >= emergingProblemRate {
		return models.InsightReview
	}
	return models.InsightMonitor
}

func attemptCount(n int) string {
	if n == 1 {
		return "1 attempt"
	}
	return fmt.Sprintf("%d attempts", n)
}
