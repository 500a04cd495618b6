package videomatch

import (
	"strings"
	"time"

	"github.com/sghansard/hansardkb/internal/types"
)

// parliamentaryKeywords is the fixed set used for the title/description
// keyword bonus (§4.3).
var parliamentaryKeywords = []string{
	"parliament", "parliamentary", "hansard", "sitting", "sitting of parliament",
	"minister", "mp speech", "question time", "budget debate",
}

// factor names the scoring components that contributed to a candidate's
// confidence, in the fixed order they're evaluated.
const (
	factorSameDay           = "same_day"
	factorWithinOneDay      = "within_one_day"
	factorWithinWindow      = "within_window"
	factorTitleKeyword      = "title_keyword"
	factorLongDuration      = "long_duration"
	factorModerateDuration  = "moderate_duration"
	factorLivestream        = "livestream"
	factorDescriptionKeyword = "description_keyword"
	factorSpeakerMention     = "speaker_mention"
)

// scoredCandidate pairs a VideoCandidate with its confidence score and
// the factors that fired, ahead of selection.
type scoredCandidate struct {
	candidate types.VideoCandidate
	score     float64
	factors   []string
	dateDelta time.Duration
}

// scoreCandidate computes the 0-10 confidence score of §4.3, clipped at
// 10, recording only the factors that actually fired.
func scoreCandidate(candidate types.VideoCandidate, sittingDate time.Time, speakers []string) scoredCandidate {
	var score float64
	var factors []string

	delta := candidate.PublishedAt.Sub(sittingDate)
	absDays := absDays(delta)
	switch {
	case absDays == 0:
		score += 4
		factors = append(factors, factorSameDay)
	case absDays == 1:
		score += 3
		factors = append(factors, factorWithinOneDay)
	case absDays <= 3:
		score += 1
		factors = append(factors, factorWithinWindow)
	}

	titleLower := strings.ToLower(candidate.Title)
	descLower := strings.ToLower(candidate.Description)

	if containsAny(titleLower, parliamentaryKeywords) {
		score += 2
		factors = append(factors, factorTitleKeyword)
	}

	switch {
	case candidate.DurationSeconds >= 3600:
		score += 2
		factors = append(factors, factorLongDuration)
	case candidate.DurationSeconds >= 1800:
		score += 1
		factors = append(factors, factorModerateDuration)
	}

	if candidate.IsLivestream {
		score += 1
		factors = append(factors, factorLivestream)
	}

	if containsAny(descLower, parliamentaryKeywords) {
		score += 0.5
		factors = append(factors, factorDescriptionKeyword)
	}

	for _, speaker := range speakers {
		speaker = strings.ToLower(strings.TrimSpace(speaker))
		if speaker == "" {
			continue
		}
		if strings.Contains(descLower, speaker) || strings.Contains(titleLower, speaker) {
			score += 0.5
			factors = append(factors, factorSpeakerMention)
			break
		}
	}

	if score > 10 {
		score = 10
	}

	return scoredCandidate{candidate: candidate, score: score, factors: factors, dateDelta: absDuration(delta)}
}

func absDays(d time.Duration) int {
	if d < 0 {
		d = -d
	}
	return int(d.Hours() / 24)
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

// selectBest picks the highest-scoring candidate, breaking ties by
// closeness to the sitting date then by longer duration (§4.3).
func selectBest(candidates []scoredCandidate) (scoredCandidate, bool) {
	if len(candidates) == 0 {
		return scoredCandidate{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.score > best.score {
			best = c
			continue
		}
		if c.score < best.score {
			continue
		}
		if c.dateDelta < best.dateDelta {
			best = c
			continue
		}
		if c.dateDelta == best.dateDelta && c.candidate.DurationSeconds > best.candidate.DurationSeconds {
			best = c
		}
	}
	return best, true
}
