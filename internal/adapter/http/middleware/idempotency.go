package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"wallet-ledger-service/internal/core/ports"
	"wallet-ledger-service/pkg/apperror"
	"wallet-ledger-service/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	// HeaderIdempotencyKey opts a request into at-most-once submission.
	HeaderIdempotencyKey = "Idempotency-Key"
	// HeaderIdempotencyReplayed marks a response served from the dedup store.
	HeaderIdempotencyReplayed = "Idempotency-Replayed"

	idempotencyTTL = 24 * time.Hour
)

type storedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

// Idempotency provides the caller-side deduplication contract for the
// payment engine: the engine double-applies identical requests by design, so
// any at-most-once guarantee has to be enforced here, before the engine runs.
//
// Requests without an Idempotency-Key header pass through untouched. With a
// key, the first request claims it and runs; its response is stored and
// replayed verbatim to later requests with the same key. A concurrent
// duplicate that arrives before the first response is stored gets a 409.
func Idempotency(store ports.DedupStore, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}
		scoped := c.Request.Method + ":" + c.FullPath() + ":" + key
		ctx := c.Request.Context()

		claimed, err := store.Claim(ctx, scoped, idempotencyTTL)
		if err != nil {
			// Fail open: losing deduplication is recoverable, rejecting all
			// keyed traffic during a Redis outage is not.
			log.Warn().Err(err).Msg("dedup store unavailable, proceeding without idempotency")
			c.Next()
			return
		}

		if !claimed {
			payload, err := store.GetResult(ctx, scoped)
			if err == nil && payload != nil {
				var sr storedResponse
				if json.Unmarshal(payload, &sr) == nil {
					c.Writer.Header().Set(HeaderIdempotencyReplayed, "true")
					c.Data(sr.Status, "application/json; charset=utf-8", sr.Body)
					c.Abort()
					return
				}
			}
			// Original request still in flight.
			response.Error(c, apperror.ErrDuplicateRequest())
			c.Abort()
			return
		}

		capture := &bodyCaptureWriter{ResponseWriter: c.Writer, buf: &bytes.Buffer{}}
		c.Writer = capture
		c.Next()

		// Server errors are not stored: the claim expires with its TTL and
		// the outcome is not replayable.
		status := capture.Status()
		if status < http.StatusInternalServerError {
			payload, err := json.Marshal(storedResponse{Status: status, Body: capture.buf.Bytes()})
			if err == nil {
				if err := store.SaveResult(ctx, scoped, payload, idempotencyTTL); err != nil {
					log.Warn().Err(err).Str("key", key).Msg("failed to store idempotent response")
				}
			}
		}
	}
}

type bodyCaptureWriter struct {
	gin.ResponseWriter
	buf *bytes.Buffer
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCaptureWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
