package api

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopallet/codec"
	"gopallet/metrics"
	"gopallet/runtime"
	"gopallet/runtime/processing"
	"gopallet/runtime/store"
	demo "gopallet/testing"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestServer(t *testing.T, opts Options, collector *metrics.Collector) (*Server, *store.MemoryStateStore) {
	t.Helper()

	testStore := store.NewMemoryStateStore()
	require.NoError(t, testStore.ApplyGenesis(demo.DemoGenesis()))

	processor := processing.NewBlockProcessor(testStore, quietLogger())
	if collector != nil {
		processor.SetMetrics(collector)
		opts.Metrics = collector.Handler()
	}
	if opts.Logger == nil {
		opts.Logger = quietLogger()
	}
	return NewServer(testStore, processor, opts), testStore
}

func postBlock(t *testing.T, url string, block runtime.Block) *http.Response {
	t.Helper()
	body, err := codec.EncodeBlock(block)
	require.NoError(t, err)
	resp, err := http.Post(url+"/api/blocks", "application/json", strings.NewReader(string(body)))
	require.NoError(t, err)
	return resp
}

func TestAPIIntegration(t *testing.T) {
	collector := metrics.NewCollector("it")
	server, _ := newTestServer(t, Options{}, collector)

	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	t.Run("GET /api/chain/height - genesis", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/chain/height")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var response map[string]uint64
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
		assert.Equal(t, uint64(0), response["block_number"])
	})

	t.Run("POST /api/blocks - demo chain", func(t *testing.T) {
		for _, block := range demo.DemoChain() {
			resp := postBlock(t, ts.URL, block)
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			var receipt runtime.Receipt
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&receipt))
			resp.Body.Close()
			assert.Equal(t, block.Header.BlockNumber, receipt.BlockNumber)
			assert.Empty(t, receipt.Failed())
		}
	})

	t.Run("GET /api/accounts/{id}", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/accounts/bob")
		require.NoError(t, err)
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"account":"bob","balance":68,"nonce":2}`, string(body))
	})

	t.Run("GET /api/claims/{content}", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/claims/This%20is%20alice%27s%20first%20claim.")
		require.NoError(t, err)
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"content":"This is alice's first claim.","owner":"alice"}`, string(body))
	})

	t.Run("POST /api/blocks - replayed block", func(t *testing.T) {
		resp := postBlock(t, ts.URL, demo.DemoChain()[0])
		defer resp.Body.Close()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("GET /metrics", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(body), "it_executor_blocks_executed_total 2")
		assert.Contains(t, string(body), `it_executor_blocks_rejected_total{reason="block_number_mismatch"} 1`)
		// The replayed block still advanced the counter.
		assert.Contains(t, string(body), "it_system_block_number 3")
	})

	t.Run("GET /api/blocks - method not allowed", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/blocks")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})

	t.Run("404 on unknown endpoint", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/unknown")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestMetricsNotMountedWithoutCollector(t *testing.T) {
	server, _ := newTestServer(t, Options{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBlockSubmissionRateLimit(t *testing.T) {
	server, _ := newTestServer(t, Options{BlockRate: 0.001, BlockBurst: 2}, nil)

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		body, err := codec.EncodeBlock(runtime.Block{Header: runtime.Header{BlockNumber: runtime.BlockNumber(i + 1)}})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/blocks", strings.NewReader(string(body)))
		req.RemoteAddr = "10.0.0.1:4000"
		w := httptest.NewRecorder()
		server.Handler().ServeHTTP(w, req)
		statuses = append(statuses, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, statuses)

	// Reads are never limited and other clients get their own bucket.
	req := httptest.NewRequest(http.MethodGet, "/api/chain/height", nil)
	req.RemoteAddr = "10.0.0.1:4000"
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	body, err := codec.EncodeBlock(runtime.Block{Header: runtime.Header{BlockNumber: 3}})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodPost, "/api/blocks", strings.NewReader(string(body)))
	req.RemoteAddr = "10.0.0.2:4000"
	w = httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	server, _ := newTestServer(t, Options{}, nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/api/chain/height")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
