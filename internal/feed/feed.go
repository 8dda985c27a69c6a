// Package feed polls the flight operations feed and records on-time flags.
package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"airline-ops-backend/config"
	"airline-ops-backend/internal/store"
)

// Service polls the upstream feed and hands status updates to the store.
type Service struct {
	cfg    config.FeedConfig
	store  store.Store
	client *http.Client
}

// NewService creates and initializes a new feed poller.
func NewService(cfg config.FeedConfig, store store.Store) *Service {
	var transport http.RoundTripper = &http.Transport{}
	if cfg.HTTPProxy != "" {
		proxyURL, err := url.Parse(cfg.HTTPProxy)
		if err != nil {
			log.Printf("Warning: Invalid proxy URL %q: %v. Feed will not use a proxy.", cfg.HTTPProxy, err)
		} else {
			transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
		}
	}

	return &Service{
		cfg:   cfg,
		store: store,
		client: &http.Client{
			Transport: transport,
			Timeout:   time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// Run polls the feed until ctx is cancelled.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Enabled {
		log.Println("Feed poller is disabled. Not starting.")
		return
	}
	log.Println("Starting feed poller...")

	s.PollOnce(ctx)

	timer := time.NewTimer(s.cfg.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Feed poller shutting down.")
			return
		case <-timer.C:
			s.PollOnce(ctx)
			timer.Reset(s.cfg.Interval)
		}
	}
}

// PollOnce fetches every page of the feed and applies the updates it got.
// A failed page stops paging; updates already fetched are still applied.
func (s *Service) PollOnce(ctx context.Context) int {
	var updates []store.StatusUpdate
	total := 1
	pageSize := s.cfg.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}
	var fetchErr error
	for page := 1; (page-1)*pageSize < total; page++ {
		resp, err := s.fetchPage(ctx, page, pageSize)
		if err != nil {
			log.Printf("Error fetching feed page %d: %v", page, err)
			fetchErr = err
			break
		}
		if resp.Data.Total == 0 || len(resp.Data.Items) == 0 {
			break
		}
		total = resp.Data.Total
		updates = append(updates, resp.Data.Items...)
	}

	if len(updates) == 0 {
		if fetchErr != nil {
			log.Println("Feed poll aborted: nothing retrieved.")
		}
		return 0
	}

	n, err := s.store.UpdateFlightStatus(ctx, updates)
	if err != nil {
		log.Printf("Error applying %d flight status updates: %v", len(updates), err)
		return 0
	}
	log.Printf("Feed poll finished: %d of %d flight instances updated.", n, len(updates))
	return n
}

func (s *Service) fetchPage(ctx context.Context, page, pageSize int) (*ApiResponse, error) {
	jsonBody, err := json.Marshal(map[string]int{"page": page, "pageSize": pageSize})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range s.cfg.Headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received non-200 status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var apiResp ApiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal feed response: %w", err)
	}
	if apiResp.Code != 0 {
		return nil, fmt.Errorf("feed returned non-zero application code: %d", apiResp.Code)
	}
	return &apiResp, nil
}
