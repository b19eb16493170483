package rate

import "net/http"

// Limiter controls request rates to the Drip API.
//
// Drip allows a fixed number of requests per hour per account; going over
// it yields 429 responses. A Limiter spaces requests out before they are
// sent so the client stays under that budget.
//
// Example usage:
//
//	client, err := drip.NewClient(apiKey, accountId,
//	    drip.WithRateLimiter(rate.NewTokenBucket(3600, time.Hour, 10)),
//	)
//
// The Limit method is called before each request (including retries)
// and blocks until the request may proceed. It returns an error when the
// request's context ends first; the request is then not sent.
type Limiter interface {
	Limit(req *http.Request) error
}
