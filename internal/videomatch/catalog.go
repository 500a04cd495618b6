// Package videomatch implements the match(...) contract of §4.3: a
// date-windowed search against an external video catalog, multi-factor
// confidence scoring, and persisted match results.
package videomatch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	apperrors "github.com/sghansard/hansardkb/internal/errors"
	"github.com/sghansard/hansardkb/internal/httpclient"
	"github.com/sghansard/hansardkb/internal/types"
)

// Catalog is the external video catalog collaborator. The concrete
// implementation speaks the YouTube Data API v3 wire format; the
// interface keeps the scorer and service independent of that choice.
type Catalog interface {
	Search(ctx context.Context, channel, query string, publishedAfter, publishedBefore time.Time, max int) ([]types.VideoCandidate, error)
}

// YouTubeCatalog queries the YouTube Data API v3 search and videos
// endpoints, the same fetch-with-retry fabric ingestion uses for the
// Hansard catalog (§5: every outbound call has an explicit timeout and
// bounded retries).
type YouTubeCatalog struct {
	client  *httpclient.RetryClient
	baseURL string
	apiKey  string
}

func NewYouTubeCatalog(baseURL, apiKey string, client *httpclient.RetryClient) *YouTubeCatalog {
	return &YouTubeCatalog{client: client, baseURL: baseURL, apiKey: apiKey}
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title       string    `json:"title"`
			Description string    `json:"description"`
			ChannelID   string    `json:"channelId"`
			PublishedAt time.Time `json:"publishedAt"`
			LiveBroadcastContent string `json:"liveBroadcastContent"`
		} `json:"snippet"`
	} `json:"items"`
}

type videosResponse struct {
	Items []struct {
		ID             string `json:"id"`
		ContentDetails struct {
			Duration string `json:"duration"`
			Caption  string `json:"caption"`
		} `json:"contentDetails"`
		LiveStreamingDetails *struct {
			ActualStartTime string `json:"actualStartTime"`
		} `json:"liveStreamingDetails,omitempty"`
	} `json:"items"`
}

// Search queries the catalog by channel and text query within a
// publish-date window, ordered by publish date, then enriches each
// candidate with duration and livestream details via a second call
// (§4.3: "For each candidate, fetch duration and optional livestream
// details in a second call").
func (c *YouTubeCatalog) Search(ctx context.Context, channel, query string, after, before time.Time, max int) ([]types.VideoCandidate, error) {
	if c.apiKey == "" {
		return nil, apperrors.NewConfigurationError("video catalog api key not configured")
	}

	searchURL := fmt.Sprintf("%s/search?%s", c.baseURL, url.Values{
		"key":             {c.apiKey},
		"part":            {"snippet"},
		"type":            {"video"},
		"channelId":       {channel},
		"q":               {query},
		"order":           {"date"},
		"publishedAfter":  {after.UTC().Format(time.RFC3339)},
		"publishedBefore": {before.UTC().Format(time.RFC3339)},
		"maxResults":      {strconv.Itoa(max)},
	}.Encode())

	var parsed searchResponse
	if err := c.getJSON(ctx, searchURL, &parsed); err != nil {
		return nil, err
	}
	if len(parsed.Items) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(parsed.Items))
	byID := make(map[string]types.VideoCandidate, len(parsed.Items))
	for _, item := range parsed.Items {
		id := item.ID.VideoID
		ids = append(ids, id)
		byID[id] = types.VideoCandidate{
			VideoID:      id,
			Title:        item.Snippet.Title,
			Description:  item.Snippet.Description,
			URL:          "https://www.youtube.com/watch?v=" + id,
			PublishedAt:  item.Snippet.PublishedAt,
			ChannelID:    item.Snippet.ChannelID,
			IsLivestream: item.Snippet.LiveBroadcastContent == "live" || item.Snippet.LiveBroadcastContent == "upcoming",
		}
	}

	detailsURL := fmt.Sprintf("%s/videos?%s", c.baseURL, url.Values{
		"key":  {c.apiKey},
		"part": {"contentDetails,liveStreamingDetails"},
		"id":   {joinComma(ids)},
	}.Encode())

	var details videosResponse
	if err := c.getJSON(ctx, detailsURL, &details); err != nil {
		return nil, err
	}

	out := make([]types.VideoCandidate, 0, len(ids))
	for _, d := range details.Items {
		cand, ok := byID[d.ID]
		if !ok {
			continue
		}
		cand.DurationSeconds = parseISO8601Duration(d.ContentDetails.Duration)
		cand.HasCaptions = d.ContentDetails.Caption == "true"
		if d.LiveStreamingDetails != nil {
			cand.IsLivestream = true
		}
		out = append(out, cand)
	}
	return out, nil
}

func (c *YouTubeCatalog) getJSON(ctx context.Context, reqURL string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return apperrors.NewInternalError("build video catalog request", err)
	}
	resp, err := c.client.Do(ctx, req)
	if err != nil {
		return apperrors.NewUpstreamError("video catalog request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return apperrors.NewRateLimitError("video catalog quota exhausted", 60)
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return apperrors.NewUpstreamError("video catalog auth failed", nil)
	}
	if resp.StatusCode >= 400 {
		return apperrors.NewUpstreamError(fmt.Sprintf("video catalog returned %d", resp.StatusCode), nil)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return apperrors.NewUpstreamError("decode video catalog response", err)
	}
	return nil
}

func joinComma(ids []string) string {
	out := ""
	for i, id := range ids {
		if i > 0 {
			out += ","
		}
		out += id
	}
	return out
}
