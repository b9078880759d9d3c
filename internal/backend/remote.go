package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/abawan7/quantum-entanglement-and-decoherence-simulator/internal/sim"
)

// Remote submits circuits to an HTTP execution service. The service accepts
// a JSON Request and answers either {"counts": {...}} or {"error": {...}}.
// Job queueing on the far side can block for an unbounded time, so callers
// must bound Submit with a context deadline; expiry is transient.
type Remote struct {
	URL    string
	Client *http.Client
	Logger zerolog.Logger
}

// NewRemote returns a remote backend for the given endpoint URL.
func NewRemote(url string, logger zerolog.Logger) *Remote {
	return &Remote{URL: url, Client: http.DefaultClient, Logger: logger}
}

func (r *Remote) Name() string { return "remote" }

// response is the service's reply envelope.
type response struct {
	Counts map[string]int `json:"counts"`
	Error  *struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		Transient bool   `json:"transient"`
	} `json:"error"`
}

func (r *Remote) Submit(ctx context.Context, req *Request) (sim.Counts, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fatalError("encode", "marshal request: %v", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fatalError("bad_url", "build request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	r.Logger.Debug().Str("id", req.ID).Str("url", r.URL).Int("shots", req.Shots).Msg("submitting circuit")

	resp, err := r.Client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, transientError("timeout", "submit %s: %v", req.ID, err)
		}
		return nil, transientError("unreachable", "submit %s: %v", req.ID, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return nil, transientError("unavailable", "submit %s: status %d", req.ID, resp.StatusCode)
	default:
		return nil, fatalError("rejected", "submit %s: status %d", req.ID, resp.StatusCode)
	}

	var decoded response
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, transientError("bad_response", "decode %s: %v", req.ID, err)
	}
	if decoded.Error != nil {
		return nil, &Error{
			Code:      decoded.Error.Code,
			Message:   decoded.Error.Message,
			Transient: decoded.Error.Transient,
		}
	}
	if decoded.Counts == nil {
		return nil, transientError("bad_response", "submit %s: empty reply", req.ID)
	}

	counts := make(sim.Counts, len(decoded.Counts))
	total := 0
	for bitstring, n := range decoded.Counts {
		if n < 0 {
			return nil, fatalError("bad_counts", "submit %s: negative count for %q", req.ID, bitstring)
		}
		counts[bitstring] = n
		total += n
	}
	if total != req.Shots {
		return nil, fatalError("bad_counts", "submit %s: counts sum %d, want %d shots",
			req.ID, total, req.Shots)
	}
	return counts, nil
}
