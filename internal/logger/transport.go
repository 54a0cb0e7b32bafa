package logger

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const RequestIDHeader = "X-Request-ID"

// Transport wraps next so every outgoing backend call carries a request id
// and is logged once it completes.
func Transport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		start := time.Now()

		reqID := req.Header.Get(RequestIDHeader)
		if reqID == "" {
			reqID = RequestIDFrom(req.Context())
		}
		if reqID == "" {
			reqID = uuid.New().String()
		}

		req = req.Clone(WithRequestID(req.Context(), reqID))
		req.Header.Set(RequestIDHeader, reqID)

		log := FromCtx(req.Context()).With(
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
		)

		resp, err := next.RoundTrip(req)
		if err != nil {
			log.Warn("outgoing request failed",
				zap.Error(err),
				zap.Duration("duration", time.Since(start)),
			)
			return nil, err
		}

		log.Info("outgoing request",
			zap.Int("status", resp.StatusCode),
			zap.Duration("duration", time.Since(start)),
		)
		return resp, nil
	})
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
