package videomatch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	apperrors "github.com/sghansard/hansardkb/internal/errors"
	"github.com/sghansard/hansardkb/internal/logger"
	"github.com/sghansard/hansardkb/internal/store/kv"
	"github.com/sghansard/hansardkb/internal/store/object"
	"github.com/sghansard/hansardkb/internal/store/relational"
	"github.com/sghansard/hansardkb/internal/tracing"
	"github.com/sghansard/hansardkb/internal/types"
)

const stageName = "videomatch"

// searchPageSize is the number of candidates requested per §4.3 ("up to
// 10 candidates ordered by publish date").
const searchPageSize = 10

// Request is the input to match(...).
type Request struct {
	TranscriptID string
	SittingDate  string
	Speakers     []string
	Channel      string
}

// Service implements the match(...) and get_match(...) contracts of §4.3.
type Service struct {
	catalog       Catalog
	cache         *kv.Store
	objects       object.Store
	mirror        *relational.Store
	defaultChannel string
	windowBefore  time.Duration
	windowAfter   time.Duration
	minConfidence float64
	cacheTTL      time.Duration
}

func NewService(
	catalog Catalog,
	cache *kv.Store,
	objects object.Store,
	mirror *relational.Store,
	defaultChannel string,
	windowBeforeDays, windowAfterDays int,
	minConfidence float64,
	cacheTTL time.Duration,
) *Service {
	return &Service{
		catalog:        catalog,
		cache:          cache,
		objects:        objects,
		mirror:         mirror,
		defaultChannel: defaultChannel,
		windowBefore:   time.Duration(windowBeforeDays) * 24 * time.Hour,
		windowAfter:    time.Duration(windowAfterDays) * 24 * time.Hour,
		minConfidence:  minConfidence,
		cacheTTL:       cacheTTL,
	}
}

// ErrNoMatch signals that no candidate cleared the minimum confidence
// threshold; the caller responds with a 200 carrying no match rather
// than an error, per the "NoMatch" outcome of §4.3.
var ErrNoMatch = fmt.Errorf("no video match cleared the confidence threshold")

// Match implements match(transcript_id, sitting_date, speakers?, channel?).
func (s *Service) Match(ctx context.Context, req Request) (*types.VideoMatch, error) {
	isoDate, err := types.CanonicalSittingDate(req.SittingDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	sittingDate, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError("invalid sitting date: " + err.Error())
	}

	channel := req.Channel
	if channel == "" {
		channel = s.defaultChannel
	}

	after := sittingDate.Add(-s.windowBefore)
	before := sittingDate.Add(s.windowAfter)

	query := fmt.Sprintf("parliament %s", isoDate)
	searchCtx, searchSpan := tracing.StartSpan(ctx, stageName, "search")
	candidates, err := s.catalog.Search(searchCtx, channel, query, after, before, searchPageSize)
	searchSpan.End()
	if err != nil {
		return nil, err
	}

	scored := make([]scoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, scoreCandidate(c, sittingDate, req.Speakers))
	}

	best, ok := selectBest(scored)
	if !ok || best.score < s.minConfidence {
		logger.Stage(ctx, stageName, "no_match", map[string]interface{}{
			"transcript_id": req.TranscriptID, "candidate_count": len(scored),
		})
		return nil, ErrNoMatch
	}

	match := &types.VideoMatch{
		TranscriptID:    req.TranscriptID,
		VideoID:         best.candidate.VideoID,
		URL:             best.candidate.URL,
		Title:           best.candidate.Title,
		DurationSeconds: best.candidate.DurationSeconds,
		PublishedAt:     best.candidate.PublishedAt,
		ChannelID:       best.candidate.ChannelID,
		ConfidenceScore: best.score,
		MatchCriteria:   best.factors,
		HasCaptions:     best.candidate.HasCaptions,
	}

	if err := s.persist(ctx, match); err != nil {
		return nil, err
	}

	return match, nil
}

func (s *Service) persist(ctx context.Context, match *types.VideoMatch) error {
	body, err := json.Marshal(match)
	if err != nil {
		return apperrors.NewInternalError("marshal video match", err)
	}
	if _, err := s.objects.Put(ctx, object.VideoMatchKey(match.TranscriptID), body, "application/json"); err != nil {
		return err
	}

	if err := s.cache.Set(ctx, kv.VideoMatchKey(match.TranscriptID), match, s.cacheTTL); err != nil {
		logger.StageWarn(ctx, stageName, "cache_write_failed", map[string]interface{}{"error": err.Error()})
	}

	if s.mirror != nil {
		if err := s.mirror.UpsertVideoMatch(ctx, match); err != nil {
			logger.StageWarn(ctx, stageName, "mirror_write_failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return nil
}

// GetMatch implements get_match(transcript_id): cache, then object
// store, then NotFound. A store hit rehydrates the cache (§4.3).
func (s *Service) GetMatch(ctx context.Context, transcriptID string) (*types.VideoMatch, error) {
	var cached types.VideoMatch
	hit, err := s.cache.Get(ctx, kv.VideoMatchKey(transcriptID), &cached)
	if err != nil {
		return nil, err
	}
	if hit {
		return &cached, nil
	}

	body, err := s.objects.Get(ctx, object.VideoMatchKey(transcriptID))
	if err != nil {
		return nil, apperrors.NewNotFoundError("video match not found for " + transcriptID)
	}

	var match types.VideoMatch
	if err := json.Unmarshal(body, &match); err != nil {
		return nil, apperrors.NewInternalError("unmarshal video match", err)
	}

	if err := s.cache.Set(ctx, kv.VideoMatchKey(transcriptID), &match, s.cacheTTL); err != nil {
		logger.StageWarn(ctx, stageName, "cache_rehydrate_failed", map[string]interface{}{"error": err.Error()})
	}

	return &match, nil
}
