package moments

// AnalyzeRequest is the input to a single-quote scoring request
// (POST /api/moments/analyze): a caller-supplied quote plus the same
// signal fields the extraction LLM would otherwise propose.
type AnalyzeRequest struct {
	Quote               string  `json:"quote"`
	Speaker             string  `json:"speaker"`
	Topic               string  `json:"topic"`
	EmotionalTone       string  `json:"emotional_tone"`
	AIScore             float64 `json:"ai_score"`
	HasContradiction    bool    `json:"has_contradiction"`
	AffectsEverydayLife bool    `json:"affects_everyday_life"`
}

// AnalyzeResult exposes the deterministic rescore breakdown for one
// quote, without persisting anything.
type AnalyzeResult struct {
	FinalScore    float64 `json:"final_score"`
	JargonDensity float64 `json:"jargon_density"`
	Contradiction bool    `json:"contradiction"`
	Quotability   float64 `json:"quotability"`
	Everyday      bool    `json:"everyday"`
	Emotion       float64 `json:"emotion"`
}

// Analyze scores a single quote using the same deterministic rescore
// formula applied during extraction, for ad hoc testing of the
// scoring curve.
func Analyze(req AnalyzeRequest) AnalyzeResult {
	jargon := jargonDensity(req.Quote)
	hasContradiction := contradiction(req.Quote, req.HasContradiction)
	quot := quotability(wordCount(req.Quote))
	isEveryday := everyday(req.Topic, req.AffectsEverydayLife)
	emo := emotion(req.EmotionalTone)
	score := finalScore(req.AIScore, jargon, hasContradiction, quot, isEveryday, emo)

	return AnalyzeResult{
		FinalScore:    score,
		JargonDensity: jargon,
		Contradiction: hasContradiction,
		Quotability:   quot,
		Everyday:      isEveryday,
		Emotion:       emo,
	}
}
