package rate

import (
	"net/http"
	"time"

	xrate "golang.org/x/time/rate"
)

type tokenBucket struct {
	limiter *xrate.Limiter
}

var _ Limiter = &tokenBucket{}

// NewTokenBucket allows `requests` per `per` with bursts of up to `burst`.
// Non-positive values disable limiting.
func NewTokenBucket(requests int, per time.Duration, burst int) Limiter {
	if requests <= 0 || per <= 0 {
		return &NoopLimiter{}
	}
	if burst < 1 {
		burst = 1
	}
	every := per / time.Duration(requests)
	return &tokenBucket{
		limiter: xrate.NewLimiter(xrate.Every(every), burst),
	}
}

func (t *tokenBucket) Limit(req *http.Request) error {
	return t.limiter.Wait(req.Context())
}
