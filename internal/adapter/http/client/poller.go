package client

import (
	"context"
	"time"

	response "insurance_quotes/internal/adapter/http/dto/response"
)

// WaitResult is what a caller gets back from WaitForQuotes. TimedOut means
// the wait gave up before every provider settled; the backend keeps running
// and later polls may see more quotes.
type WaitResult struct {
	Progress response.ProgressResponse
	Quotes   []response.ScoredQuoteResponse
	TimedOut bool
}

// WaitForQuotes polls progress until every dispatched provider has settled
// or the wait timeout elapses, then fetches the ranking. Hitting the timeout
// is not an error. API errors and cancellation of ctx are.
func (c *Client) WaitForQuotes(ctx context.Context, id, token string) (WaitResult, error) {
	waitCtx, cancel := context.WithTimeout(ctx, c.waitTimeout)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	var last response.ProgressResponse
	for {
		p, err := c.Progress(waitCtx, id, token)
		switch {
		case err == nil:
			last = p
			if p.Done {
				return c.collect(ctx, id, token, last, false)
			}
		case ctx.Err() != nil:
			return WaitResult{}, ctx.Err()
		case waitCtx.Err() == nil:
			return WaitResult{}, err
		}

		if ctx.Err() != nil {
			return WaitResult{}, ctx.Err()
		}
		select {
		case <-ctx.Done():
			return WaitResult{}, ctx.Err()
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return WaitResult{}, ctx.Err()
			}
			return c.collect(ctx, id, token, last, true)
		case <-ticker.C:
		}
	}
}

func (c *Client) collect(ctx context.Context, id, token string, p response.ProgressResponse, timedOut bool) (WaitResult, error) {
	quotes, err := c.Quotes(ctx, id, token)
	if err != nil {
		return WaitResult{}, err
	}
	return WaitResult{Progress: p, Quotes: quotes, TimedOut: timedOut}, nil
}
