package mlbstats

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mlasky/diamondsync/internal/platform/resilience"
	"github.com/mlasky/diamondsync/internal/usecase"
)

const scheduleBody = `{
  "dates": [
    {
      "date": "2023-05-10",
      "games": [
        {
          "gamePk": 718402,
          "officialDate": "2023-05-10",
          "status": {"detailedState": "Final"},
          "teams": {
            "away": {"score": 3, "team": {"id": 119, "name": "Los Angeles Dodgers"}},
            "home": {"score": 5, "team": {"id": 137, "name": "San Francisco Giants"}}
          }
        }
      ]
    }
  ]
}`

const boxscoreBody = `{
  "teams": {
    "away": {
      "team": {"id": 119, "name": "Los Angeles Dodgers"},
      "players": {
        "ID605141": {
          "person": {"id": 605141, "fullName": "Mookie Betts"},
          "stats": {"batting": {"atBats": 4, "hits": 2, "runs": 1, "doubles": 1, "homeRuns": 1, "rbi": 2, "baseOnBalls": 0, "stolenBases": 0, "caughtStealing": 0}}
        },
        "ID571901": {
          "person": {"id": 571901, "fullName": "Relief Arm"},
          "stats": {"batting": {}}
        }
      }
    },
    "home": {
      "team": {"id": 137, "name": "San Francisco Giants"},
      "players": {
        "ID474832": {
          "person": {"id": 474832, "fullName": "Some Giant"},
          "stats": {"batting": {"atBats": 3, "hits": 1, "runs": 1, "baseOnBalls": 1}}
        }
      }
    }
  }
}`

func newTestClient(t *testing.T, handler http.Handler, maxRetries int) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(ClientConfig{
		HTTPClient:      server.Client(),
		BaseURL:         server.URL,
		MaxRetries:      maxRetries,
		BoxscoreWorkers: 2,
		CircuitBreaker:  resilience.CircuitBreakerConfig{Enabled: false},
	})
}

func TestFetchDayCombinesScheduleAndBoxscores(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/schedule", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "2023-05-10", r.URL.Query().Get("date"))
		require.Equal(t, "1", r.URL.Query().Get("sportId"))
		_, _ = w.Write([]byte(scheduleBody))
	})
	mux.HandleFunc("/game/718402/boxscore", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(boxscoreBody))
	})

	client := newTestClient(t, mux, 0)
	games, stats, err := client.FetchDay(context.Background(), "2023-05-10")
	require.NoError(t, err)

	require.Len(t, games, 1)
	require.Equal(t, int64(718402), games[0].GamePk)
	require.Equal(t, "Final", games[0].Status)
	require.Equal(t, "Los Angeles Dodgers", games[0].AwayTeam)
	require.Equal(t, 5, games[0].HomeScore)

	// The pitcher with an empty batting block is dropped.
	require.Len(t, stats, 2)
	require.Equal(t, int64(605141), stats[0].PlayerID)
	require.Equal(t, int64(119), stats[0].TeamID)
	require.Equal(t, 2, stats[0].Hits)
	require.Equal(t, 1, stats[0].HomeRuns)
	require.Equal(t, int64(474832), stats[1].PlayerID)
	require.Equal(t, 1, stats[1].Walks)
}

func TestFetchDayNoGamesIsEmpty(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/schedule", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"dates": []}`))
	})

	client := newTestClient(t, mux, 0)
	games, stats, err := client.FetchDay(context.Background(), "2023-11-20")
	require.NoError(t, err)
	require.Empty(t, games)
	require.Empty(t, stats)
}

func TestExecuteRequestRetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/schedule", func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(scheduleBody))
	})

	client := newTestClient(t, mux, 2)
	games, err := client.FetchGamesByDate(context.Background(), "2023-05-10")
	require.NoError(t, err)
	require.Len(t, games, 1)
	require.Equal(t, int32(2), calls.Load())
}

func TestExecuteRequestDoesNotRetryClientErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/schedule", func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})

	client := newTestClient(t, mux, 3)
	_, err := client.FetchGamesByDate(context.Background(), "2023-05-10")
	require.Error(t, err)
	require.Equal(t, int32(1), calls.Load())
}

func TestCircuitBreakerShortCircuitsAfterFailures(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		HTTPClient: server.Client(),
		BaseURL:    server.URL,
		MaxRetries: 0,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	ctx := context.Background()
	_, err := client.FetchGamesByDate(ctx, "2023-05-10")
	require.Error(t, err)
	_, err = client.FetchGamesByDate(ctx, "2023-05-11")
	require.Error(t, err)

	// Third call never reaches the server.
	_, err = client.FetchGamesByDate(ctx, "2023-05-12")
	require.True(t, errors.Is(err, usecase.ErrDependencyUnavailable), "got %v", err)
}
