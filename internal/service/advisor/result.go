// Package advisor runs the AI agents behind a fallback wall: every operation
// returns a Result and never an error, so handlers always have a body to send.
package advisor

import "maps"

type Status string

const (
	StatusOK               Status = "ok"
	StatusInsufficientData Status = "insufficient_data"
	StatusFallback         Status = "fallback"
)

// Result is the outcome of one advisor operation.
type Result struct {
	Status Status
	Data   map[string]any
	// Reason explains an insufficient_data result.
	Reason string
	// Cause is the agent or store failure behind a fallback.
	Cause error
}

func ok(data map[string]any) Result {
	return Result{Status: StatusOK, Data: data}
}

func insufficient(reason string, data map[string]any) Result {
	return Result{Status: StatusInsufficientData, Data: data, Reason: reason}
}

func fallback(cause error, data map[string]any) Result {
	return Result{Status: StatusFallback, Data: data, Cause: cause}
}

// Payload is the response body: Data plus result_status, with error for a
// fallback and reason for insufficient data.
func (r Result) Payload() map[string]any {
	out := make(map[string]any, len(r.Data)+2)
	maps.Copy(out, r.Data)
	out["result_status"] = string(r.Status)

	switch r.Status {
	case StatusFallback:
		if r.Cause != nil {
			out["error"] = r.Cause.Error()
		}
	case StatusInsufficientData:
		if r.Reason != "" {
			out["reason"] = r.Reason
		}
	}
	return out
}
