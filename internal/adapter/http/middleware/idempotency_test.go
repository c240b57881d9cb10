package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"wallet-ledger-service/internal/core/ports/mocks"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func idempotencyRouter(store *mocks.MockDedupStore) (*gin.Engine, *int) {
	calls := 0
	r := gin.New()
	r.POST("/pay", Idempotency(store, zerolog.Nop()), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"tx_id": "TX-" + strconv.Itoa(calls)})
	})
	return r, &calls
}

func postPay(r http.Handler, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/pay", nil)
	if key != "" {
		req.Header.Set(HeaderIdempotencyKey, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency_NoHeaderPassesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	store := mocks.NewMockDedupStore(ctrl)
	// No store expectations: an unkeyed request never touches Redis.

	r, calls := idempotencyRouter(store)
	w := postPay(r, "")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, *calls)
}

func TestIdempotency_FirstRequestRunsAndStores(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	store := mocks.NewMockDedupStore(ctrl)

	var saved []byte
	store.EXPECT().Claim(gomock.Any(), "POST:/pay:key-1", idempotencyTTL).Return(true, nil)
	store.EXPECT().SaveResult(gomock.Any(), "POST:/pay:key-1", gomock.Any(), idempotencyTTL).DoAndReturn(
		func(_ any, _ string, payload []byte, _ any) error {
			saved = payload
			return nil
		})

	r, calls := idempotencyRouter(store)
	w := postPay(r, "key-1")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, *calls)

	var sr storedResponse
	require.NoError(t, json.Unmarshal(saved, &sr))
	assert.Equal(t, http.StatusCreated, sr.Status)
	assert.Contains(t, string(sr.Body), "TX-1")
}

func TestIdempotency_ReplayServesStoredResponse(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	store := mocks.NewMockDedupStore(ctrl)

	stored, _ := json.Marshal(storedResponse{
		Status: http.StatusCreated,
		Body:   json.RawMessage(`{"tx_id":"TX-original"}`),
	})
	store.EXPECT().Claim(gomock.Any(), "POST:/pay:key-2", idempotencyTTL).Return(false, nil)
	store.EXPECT().GetResult(gomock.Any(), "POST:/pay:key-2").Return(stored, nil)

	r, calls := idempotencyRouter(store)
	w := postPay(r, "key-2")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 0, *calls, "handler must not run on replay")
	assert.Equal(t, "true", w.Header().Get(HeaderIdempotencyReplayed))
	assert.Contains(t, w.Body.String(), "TX-original")
}

func TestIdempotency_InFlightDuplicateRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	store := mocks.NewMockDedupStore(ctrl)

	store.EXPECT().Claim(gomock.Any(), "POST:/pay:key-3", idempotencyTTL).Return(false, nil)
	store.EXPECT().GetResult(gomock.Any(), "POST:/pay:key-3").Return(nil, nil)

	r, calls := idempotencyRouter(store)
	w := postPay(r, "key-3")
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 0, *calls)
	assert.Contains(t, w.Body.String(), "REQ_002")
}

func TestIdempotency_StoreOutageFailsOpen(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	store := mocks.NewMockDedupStore(ctrl)

	store.EXPECT().Claim(gomock.Any(), gomock.Any(), idempotencyTTL).
		Return(false, errors.New("redis down"))

	r, calls := idempotencyRouter(store)
	w := postPay(r, "key-4")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, *calls, "dedup outage must not block payments")
}
