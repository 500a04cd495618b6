package moments

import "strings"

// jargonVocabulary is a curated list of bureaucratic/technical terms
// whose density in a quote signals jargon-heavy (and often mockable)
// phrasing.
var jargonVocabulary = []string{
	"recalibrate", "recalibrated", "framework", "optimise", "optimize",
	"actuarial", "holistic", "synergy", "paradigm", "leverage",
	"stakeholder", "granular", "streamline", "operationalise", "operationalize",
	"bandwidth", "ecosystem", "robust", "calibrate", "calibrated",
}

// contradictionFirst/contradictionSecond are paired word lists: a
// quote containing a word from each list is treated as self-contradicting.
var contradictionFirst = []string{"will not", "never", "no plans", "ruled out"}
var contradictionSecond = []string{"considering", "reviewing", "studying", "exploring"}

var everydayTopics = []string{
	"healthcare", "housing", "transport", "cost of living", "employment",
	"education", "cpf", "hdb", "mrt", "inflation",
}

var highEmotionTones = map[string]bool{
	"angry": true, "defensive": true, "evasive": true, "frustrated": true, "shocked": true,
}
var mediumEmotionTones = map[string]bool{
	"concerned": true, "worried": true, "skeptical": true,
}

// jargonDensity returns the fraction of the curated vocabulary present
// in quote (case-insensitive), mapped to [0,1] with saturation at 3
// distinct hits. A term matched only as part of another matched term
// ("calibrate" inside "recalibrate") is not counted separately.
func jargonDensity(quote string) float64 {
	lower := strings.ToLower(quote)
	var matched []string
	for _, term := range jargonVocabulary {
		if strings.Contains(lower, term) {
			matched = append(matched, term)
		}
	}
	hits := 0
	for _, term := range matched {
		covered := false
		for _, other := range matched {
			if other != term && strings.Contains(other, term) {
				covered = true
				break
			}
		}
		if !covered {
			hits++
		}
	}
	const saturation = 3
	if hits >= saturation {
		return 1.0
	}
	return float64(hits) / saturation
}

// contradiction is true when the model flagged it directly, or when
// the quote contains both a "denial" phrase and a "hedge" phrase.
func contradiction(quote string, aiFlag bool) bool {
	if aiFlag {
		return true
	}
	lower := strings.ToLower(quote)
	hasFirst := false
	for _, w := range contradictionFirst {
		if strings.Contains(lower, w) {
			hasFirst = true
			break
		}
	}
	if !hasFirst {
		return false
	}
	for _, w := range contradictionSecond {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// quotability scores a quote's length against the empirically quotable
// range: 15-40 words is ideal, tailing off on both sides.
func quotability(wordCount int) float64 {
	switch {
	case wordCount < 10:
		return 0.3
	case wordCount < 15:
		// linear ramp from 0.3 at 10 words to 1.0 at 15 words
		return 0.3 + (1.0-0.3)*float64(wordCount-10)/5.0
	case wordCount <= 40:
		return 1.0
	case wordCount <= 60:
		return 0.7
	default:
		return 0.4
	}
}

// everyday is true when the model flagged it directly, or the topic
// substring-matches a curated everyday-impact list.
func everyday(topic string, aiFlag bool) bool {
	if aiFlag {
		return true
	}
	lower := strings.ToLower(topic)
	for _, t := range everydayTopics {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

// emotion maps a reported tone to a bounded intensity score.
func emotion(tone string) float64 {
	lower := strings.ToLower(tone)
	if highEmotionTones[lower] {
		return 1.0
	}
	if mediumEmotionTones[lower] {
		return 0.6
	}
	return 0.3
}

// finalScore composes the deterministic rescore per §4.2, clipped to
// [0,10].
func finalScore(aiScore, jargon float64, hasContradiction bool, quotabilityScore float64, isEveryday bool, emotionScore float64) float64 {
	score := aiScore*0.4 + jargon*2.0 + quotabilityScore*1.0 + emotionScore*3.0
	if hasContradiction {
		score += 2.0
	}
	if isEveryday {
		score += 1.5
	}
	if score > 10 {
		return 10
	}
	if score < 0 {
		return 0
	}
	return score
}
