package common_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/receipt-points/internal/common"
)

func TestIdemMiddleware(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()

	idem := common.Idem{R: client, TTL: time.Minute}
	wrapped := idem.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	submit := func(key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/receipts/process", nil)
		if key != "" {
			req.Header.Set("Idempotency-Key", key)
		}
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, req)
		return rec
	}

	require.Equal(t, http.StatusOK, submit("abc").Code)
	require.Equal(t, http.StatusConflict, submit("abc").Code)
	require.Equal(t, http.StatusOK, submit("def").Code)
	// requests without a key are never deduplicated
	require.Equal(t, http.StatusOK, submit("").Code)
	require.Equal(t, http.StatusOK, submit("").Code)
}
