package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/sghansard/hansardkb/internal/errors"
	"github.com/sghansard/hansardkb/internal/httpclient"
	"github.com/sghansard/hansardkb/internal/types"
)

// Fetcher retrieves a RawHansard document from the upstream catalog by
// sitting date, applying the fetch-with-retry policy of §4.1.
type Fetcher struct {
	client  *httpclient.RetryClient
	baseURL string
}

func NewFetcher(baseURL string, client *httpclient.RetryClient) *Fetcher {
	return &Fetcher{client: client, baseURL: baseURL}
}

func (f *Fetcher) FetchBySittingDate(ctx context.Context, isoDate string) (*types.RawHansard, error) {
	url := fmt.Sprintf("%s?sitting-date=%s", f.baseURL, isoDate)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.NewInternalError("build upstream request", err)
	}

	resp, err := f.client.Do(ctx, req)
	if err != nil {
		return nil, apperrors.NewUpstreamError("fetch hansard for "+isoDate, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return nil, apperrors.NewUpstreamError(
			fmt.Sprintf("upstream returned %d: %s", resp.StatusCode, string(body)), nil)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewUpstreamError("read upstream response", err)
	}

	return ParseRawHansard(raw)
}

// FetchByURL retrieves and validates a raw hansard document from an
// explicit caller-supplied URL, the third accepted ingest input form.
func (f *Fetcher) FetchByURL(ctx context.Context, url string) (*types.RawHansard, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.NewBadRequestError("invalid raw_url: " + err.Error())
	}

	resp, err := f.client.Do(ctx, req)
	if err != nil {
		return nil, apperrors.NewUpstreamError("fetch hansard from "+url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return nil, apperrors.NewUpstreamError(
			fmt.Sprintf("upstream returned %d: %s", resp.StatusCode, string(body)), nil)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewUpstreamError("read upstream response", err)
	}

	return ParseRawHansard(raw)
}

// ParseRawHansard decodes and validates the structural invariants of a
// raw hansard document (§4.1): object shape, numeric parliament/session
// numbers, non-empty dates, array sections and attendance.
func ParseRawHansard(raw []byte) (*types.RawHansard, error) {
	var doc types.RawHansard
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, apperrors.NewMalformedSourceError("invalid JSON: " + err.Error())
	}
	if err := validateRawHansard(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func validateRawHansard(doc *types.RawHansard) error {
	if doc.ParliamentNo <= 0 {
		return apperrors.NewMalformedSourceError("missing or invalid parliament_no")
	}
	if doc.SessionNo <= 0 {
		return apperrors.NewMalformedSourceError("missing or invalid session_no")
	}
	if doc.SittingDate == "" {
		return apperrors.NewMalformedSourceError("missing sitting_date")
	}
	if doc.DisplayDate == "" {
		return apperrors.NewMalformedSourceError("missing display_date")
	}
	if doc.Sections == nil {
		return apperrors.NewMalformedSourceError("missing sections array")
	}
	if doc.Attendance == nil {
		return apperrors.NewMalformedSourceError("missing attendance array")
	}
	return nil
}
