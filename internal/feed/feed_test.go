package feed

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"airline-ops-backend/config"
	"airline-ops-backend/internal/store"
	"airline-ops-backend/internal/store/mocks"
)

// pagedServer serves items in pages of the size the client asks for.
func pagedServer(t *testing.T, items []store.StatusUpdate, failPage int) (*httptest.Server, *int32) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))

		var req struct {
			Page     int `json:"page"`
			PageSize int `json:"pageSize"`
		}
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.Page == failPage {
			w.WriteHeader(http.StatusBadGateway)
			return
		}

		var resp ApiResponse
		resp.Data.Page = req.Page
		resp.Data.PageSize = req.PageSize
		resp.Data.Total = len(items)
		start := (req.Page - 1) * req.PageSize
		end := start + req.PageSize
		if end > len(items) {
			end = len(items)
		}
		if start < len(items) {
			resp.Data.Items = items[start:end]
		}
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func feedConfig(url string) config.FeedConfig {
	return config.FeedConfig{
		Enabled:        true,
		URL:            url,
		PageSize:       2,
		TimeoutSeconds: 5,
		Interval:       time.Hour,
		Headers:        map[string]string{"Authorization": "Bearer token"},
	}
}

var sample = []store.StatusUpdate{
	{FlightInstanceID: "FI100", DepartedOnTime: true, ArrivedOnTime: true},
	{FlightInstanceID: "FI101", DepartedOnTime: true},
	{FlightInstanceID: "FI102"},
}

func TestPollOnce_AllPages(t *testing.T) {
	srv, calls := pagedServer(t, sample, 0)
	st := new(mocks.Store)
	st.On("UpdateFlightStatus", mock.Anything, sample).Return(3, nil)

	n := NewService(feedConfig(srv.URL), st).PollOnce(context.Background())

	assert.Equal(t, 3, n)
	assert.Equal(t, int32(2), atomic.LoadInt32(calls))
	st.AssertExpectations(t)
}

func TestPollOnce_PartialFetchStillApplied(t *testing.T) {
	srv, _ := pagedServer(t, sample, 2)
	st := new(mocks.Store)
	st.On("UpdateFlightStatus", mock.Anything, sample[:2]).Return(2, nil)

	n := NewService(feedConfig(srv.URL), st).PollOnce(context.Background())

	assert.Equal(t, 2, n)
	st.AssertExpectations(t)
}

func TestPollOnce_NothingFetched(t *testing.T) {
	srv, _ := pagedServer(t, sample, 1)
	st := new(mocks.Store)

	n := NewService(feedConfig(srv.URL), st).PollOnce(context.Background())

	assert.Zero(t, n)
	st.AssertNotCalled(t, "UpdateFlightStatus", mock.Anything, mock.Anything)
}

func TestPollOnce_ApplicationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code": 7, "data": {"total": 1, "items": [{"flightInstanceId": "FI100"}]}}`))
	}))
	defer srv.Close()
	st := new(mocks.Store)

	assert.Zero(t, NewService(feedConfig(srv.URL), st).PollOnce(context.Background()))
	st.AssertNotCalled(t, "UpdateFlightStatus", mock.Anything, mock.Anything)
}

func TestPollOnce_StoreFailure(t *testing.T) {
	srv, _ := pagedServer(t, sample[:1], 0)
	st := new(mocks.Store)
	st.On("UpdateFlightStatus", mock.Anything, sample[:1]).Return(0, errors.New("db down"))

	assert.Zero(t, NewService(feedConfig(srv.URL), st).PollOnce(context.Background()))
	st.AssertExpectations(t)
}

func TestRun_DisabledReturnsImmediately(t *testing.T) {
	cfg := feedConfig("http://unused")
	cfg.Enabled = false
	st := new(mocks.Store)

	done := make(chan struct{})
	go func() {
		NewService(cfg, st).Run(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return for a disabled feed")
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	srv, calls := pagedServer(t, nil, 0)
	st := new(mocks.Store)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		NewService(feedConfig(srv.URL), st).Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return atomic.LoadInt32(calls) >= 1 }, time.Second, 10*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
