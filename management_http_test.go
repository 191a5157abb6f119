package streamstats

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	fiber "github.com/gofiber/fiber/v3"
	"github.com/longbridgeapp/assert"
)

// TestManagementHTTP_BasicEndpoints spins up the management HTTP server on an
// ephemeral port and validates core endpoints.
func TestManagementHTTP_BasicEndpoints(t *testing.T) {
	digest, err := NewDigest(WithMedian())
	assert.Nil(t, err)

	ctx := context.Background()
	assert.Nil(t, digest.Observe(ctx, 1, 2, 3, 4, 5))

	srv := NewManagementHTTPServer("127.0.0.1:0")
	assert.Nil(t, srv.Start(ctx, digest))

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	// wait briefly for listener
	time.Sleep(30 * time.Millisecond)

	addr := srv.Address()
	assert.True(t, addr != "")

	client := &http.Client{Timeout: 2 * time.Second}

	// /health
	resp, err := client.Get("http://" + addr + "/health")
	assert.Nil(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	// /summary
	resp, err = client.Get("http://" + addr + "/summary")
	assert.Nil(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var summaryBody map[string]any

	assert.Nil(t, json.NewDecoder(resp.Body).Decode(&summaryBody))
	_ = resp.Body.Close()
	assert.Equal(t, float64(5), summaryBody["len"])
	assert.Equal(t, float64(3), summaryBody["mean"])

	// /quantile
	resp, err = client.Get("http://" + addr + "/quantile?p=0.5")
	assert.Nil(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var quantileBody map[string]any

	assert.Nil(t, json.NewDecoder(resp.Body).Decode(&quantileBody))
	_ = resp.Body.Close()
	assert.Equal(t, float64(3), quantileBody["value"])

	// /quantile for an untracked probability
	resp, err = client.Get("http://" + addr + "/quantile?p=0.25")
	assert.Nil(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()

	// /state
	resp, err = client.Get("http://" + addr + "/state")
	assert.Nil(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	// POST /reset
	resp, err = client.Post("http://"+addr+"/reset", "text/plain", nil)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	assert.Equal(t, uint64(0), digest.Len())

	// /summary reports the now empty sample
	resp, err = client.Get("http://" + addr + "/summary")
	assert.Nil(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

// TestManagementHTTP_SingleSample covers the single-observation state: the
// sample variance is still NaN, so /summary must refuse to encode it while
// /state (all fields finite) keeps working.
func TestManagementHTTP_SingleSample(t *testing.T) {
	digest, err := NewDigest()
	assert.Nil(t, err)

	ctx := context.Background()
	assert.Nil(t, digest.Observe(ctx, 42))

	srv := NewManagementHTTPServer("127.0.0.1:0")
	assert.Nil(t, srv.Start(ctx, digest))

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	time.Sleep(30 * time.Millisecond)

	client := &http.Client{Timeout: 2 * time.Second}

	resp, err := client.Get("http://" + srv.Address() + "/summary")
	assert.Nil(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = client.Get("http://" + srv.Address() + "/state")
	assert.Nil(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var state DigestState

	assert.Nil(t, json.NewDecoder(resp.Body).Decode(&state))
	_ = resp.Body.Close()
	assert.Equal(t, uint64(1), state.Moments.Avg.Avg.Avg.N)

	// With a second observation the summary becomes encodable.
	assert.Nil(t, digest.Observe(ctx, 44))

	resp, err = client.Get("http://" + srv.Address() + "/summary")
	assert.Nil(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var summaryBody map[string]any

	assert.Nil(t, json.NewDecoder(resp.Body).Decode(&summaryBody))
	_ = resp.Body.Close()
	assert.Equal(t, float64(43), summaryBody["mean"])
}

func TestManagementHTTP_Auth(t *testing.T) {
	digest, err := NewDigest()
	assert.Nil(t, err)

	ctx := context.Background()

	srv := NewManagementHTTPServer("127.0.0.1:0", WithMgmtAuth(func(c fiber.Ctx) error {
		if c.Query("token") != "secret" {
			return c.SendStatus(fiber.StatusUnauthorized)
		}

		return nil
	}))
	assert.Nil(t, srv.Start(ctx, digest))

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	time.Sleep(30 * time.Millisecond)

	client := &http.Client{Timeout: 2 * time.Second}

	resp, err := client.Get("http://" + srv.Address() + "/health")
	assert.Nil(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = client.Get("http://" + srv.Address() + "/health?token=secret")
	assert.Nil(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
}
