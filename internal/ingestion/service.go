// Package ingestion implements fetch-with-retry, HTML speech parsing,
// segment+speaker reconstruction, and dual persistence of raw and
// processed Hansard transcripts (§4.1).
package ingestion

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/sghansard/hansardkb/internal/errors"
	"github.com/sghansard/hansardkb/internal/logger"
	"github.com/sghansard/hansardkb/internal/store/kv"
	"github.com/sghansard/hansardkb/internal/store/object"
	"github.com/sghansard/hansardkb/internal/store/relational"
	"github.com/sghansard/hansardkb/internal/tracing"
	"github.com/sghansard/hansardkb/internal/types"
)

const stageName = "ingestion"

// Request is the union of the three accepted ingest input forms;
// exactly one of SittingDate, RawHansard, or RawURL must be set.
type Request struct {
	SittingDate  string
	RawHansard   *types.RawHansard
	RawURL       string
	TranscriptID string
	SkipStore    bool
	ForceRefresh bool
}

type Service struct {
	fetcher  *Fetcher
	cache    *kv.Store
	objects  object.Store
	mirror   *relational.Store
	cacheTTL struct {
		raw       time.Duration
		processed time.Duration
	}
}

func NewService(fetcher *Fetcher, cache *kv.Store, objects object.Store, mirror *relational.Store,
	rawTTL, processedTTL time.Duration,
) *Service {
	s := &Service{fetcher: fetcher, cache: cache, objects: objects, mirror: mirror}
	s.cacheTTL.raw = rawTTL
	s.cacheTTL.processed = processedTTL
	return s
}

// Ingest implements the ingest(...) contract of §4.1.
func (s *Service) Ingest(ctx context.Context, req Request) (*types.IngestResult, error) {
	ctx, span := tracing.StartSpan(ctx, stageName, "fetch")
	defer span.End()

	start := time.Now()

	formCount := 0
	if req.SittingDate != "" {
		formCount++
	}
	if req.RawHansard != nil {
		formCount++
	}
	if req.RawURL != "" {
		formCount++
	}
	if formCount != 1 {
		return nil, apperrors.NewBadRequestError("exactly one of sitting_date, raw_hansard, or raw_url must be supplied")
	}

	var isoDate string
	var raw *types.RawHansard
	cached := false

	switch {
	case req.RawHansard != nil:
		raw = req.RawHansard
		canon, err := types.CanonicalSittingDate(raw.SittingDate)
		if err != nil {
			return nil, apperrors.NewBadRequestError(err.Error())
		}
		isoDate = canon

	case req.RawURL != "":
		fetched, err := s.fetcher.FetchByURL(ctx, req.RawURL)
		if err != nil {
			return nil, err
		}
		raw = fetched
		canon, err := types.CanonicalSittingDate(raw.SittingDate)
		if err != nil {
			return nil, apperrors.NewBadRequestError(err.Error())
		}
		isoDate = canon

	default:
		canon, err := types.CanonicalSittingDate(req.SittingDate)
		if err != nil {
			return nil, apperrors.NewBadRequestError(err.Error())
		}
		isoDate = canon

		if !req.ForceRefresh {
			var cachedRaw types.RawHansard
			hit, err := s.cache.Get(ctx, kv.RawHansardKey(isoDate), &cachedRaw)
			if err != nil {
				return nil, err
			}
			if hit {
				raw = &cachedRaw
				cached = true
			}
		}

		if raw == nil {
			fetched, err := s.fetcher.FetchBySittingDate(ctx, isoDate)
			if err != nil {
				return nil, err
			}
			raw = fetched
		}
	}

	transcriptID := req.TranscriptID
	if transcriptID == "" {
		transcriptID = types.BuildTranscriptID(isoDate, raw.ParliamentNo, raw.SessionNo)
	}

	if !req.ForceRefresh {
		var existing types.ProcessedTranscript
		hit, err := s.cache.Get(ctx, kv.ProcessedKey(transcriptID), &existing)
		if err != nil {
			return nil, err
		}
		if hit {
			logger.Stage(ctx, stageName, "cache_hit_processed", map[string]interface{}{"transcript_id": transcriptID})
			return resultFromProcessed(&existing, start, cached, "", ""), nil
		}
	}

	processed, err := BuildProcessedTranscript(transcriptID, isoDate, raw)
	if err != nil {
		return nil, err
	}

	var rawURI, processedURI string
	if !req.SkipStore {
		rawURI, processedURI, err = s.persist(ctx, isoDate, transcriptID, raw, processed)
		if err != nil {
			return nil, err
		}
		if s.mirror != nil {
			if err := s.mirror.UpsertTranscript(ctx, processed); err != nil {
				logger.StageWarn(ctx, stageName, "mirror_write_failed", map[string]interface{}{"error": err.Error()})
			}
		}
	}

	if err := s.cache.Set(ctx, kv.RawHansardKey(isoDate), raw, s.cacheTTL.raw); err != nil {
		logger.StageWarn(ctx, stageName, "cache_write_failed", map[string]interface{}{"key": "raw", "error": err.Error()})
	}
	if err := s.cache.Set(ctx, kv.ProcessedKey(transcriptID), processed, s.cacheTTL.processed); err != nil {
		logger.StageWarn(ctx, stageName, "cache_write_failed", map[string]interface{}{"key": "processed", "error": err.Error()})
	}

	return resultFromProcessed(processed, start, cached, rawURI, processedURI), nil
}

// persist writes the raw and processed artifacts in parallel; a failure
// to write either is a fatal StoreError (unless skip_store was set,
// handled by the caller not invoking persist at all).
func (s *Service) persist(ctx context.Context, isoDate, transcriptID string, raw *types.RawHansard, processed *types.ProcessedTranscript) (string, string, error) {
	g, gctx := errgroup.WithContext(ctx)
	var rawURI, processedURI string

	g.Go(func() error {
		body, err := marshalJSON(raw)
		if err != nil {
			return apperrors.NewInternalError("marshal raw hansard", err)
		}
		parts := strings.Split(isoDate, "-")
		key := object.RawHansardKey(parts[0], parts[1], parts[2], transcriptID)
		uri, err := s.objects.Put(gctx, key, body, "application/json")
		if err != nil {
			return err
		}
		rawURI = uri
		return nil
	})

	g.Go(func() error {
		body, err := marshalJSON(processed)
		if err != nil {
			return apperrors.NewInternalError("marshal processed transcript", err)
		}
		uri, err := s.objects.Put(gctx, object.ProcessedKey(transcriptID), body, "application/json")
		if err != nil {
			return err
		}
		processedURI = uri
		return nil
	})

	if err := g.Wait(); err != nil {
		if ae, ok := err.(*apperrors.AppError); ok {
			return "", "", ae
		}
		return "", "", apperrors.NewStoreError("dual persistence", err)
	}
	return rawURI, processedURI, nil
}

// GetTranscript implements get_transcript(transcript_id).
func (s *Service) GetTranscript(ctx context.Context, transcriptID string) (*types.ProcessedTranscript, error) {
	body, err := s.objects.Get(ctx, object.ProcessedKey(transcriptID))
	if err != nil {
		return nil, err
	}
	var t types.ProcessedTranscript
	if err := unmarshalJSON(body, &t); err != nil {
		return nil, apperrors.NewInternalError("unmarshal processed transcript", err)
	}
	return &t, nil
}

func resultFromProcessed(t *types.ProcessedTranscript, start time.Time, cached bool, rawURI, processedURI string) *types.IngestResult {
	totalWords := 0
	for _, seg := range t.Segments {
		totalWords += seg.WordCount
	}
	return &types.IngestResult{
		TranscriptID:   t.TranscriptID,
		SittingDate:    t.SittingDate,
		Speakers:       t.Speakers,
		Topics:         t.Topics,
		SegmentCount:   len(t.Segments),
		Cached:         cached,
		ProcessingTime: time.Since(start),
		RawURI:         rawURI,
		ProcessedURI:   processedURI,
	}
}
