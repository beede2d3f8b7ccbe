package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/quarrylabs/dss-go/pkg/dss"
)

const defaultPollInterval = 2 * time.Second

// Future is a handle on a long-running operation of the DSS instance, such
// as a connection ACL sync. It polls the instance for the operation's state;
// polling is synchronous and stops when the context is cancelled.
type Future struct {
	client       *dss.Client
	jobID        string
	initial      map[string]any
	pollInterval time.Duration
}

// NewFuture creates a future for the given job, keeping the response that
// announced it.
func NewFuture(client *dss.Client, jobID string, initial map[string]any) *Future {
	return &Future{
		client:       client,
		jobID:        jobID,
		initial:      initial,
		pollInterval: defaultPollInterval,
	}
}

// JobID returns the id of the tracked job.
func (f *Future) JobID() string {
	return f.jobID
}

// Peek returns the response that announced the job, without contacting the
// instance.
func (f *Future) Peek() map[string]any {
	return f.initial
}

// GetState fetches the job's current state, without its result.
func (f *Future) GetState(ctx context.Context) (map[string]any, error) {
	return f.client.PerformRawJSON(ctx, "GET",
		fmt.Sprintf("/futures/%s", f.jobID),
		map[string]string{"withResult": "false"}, nil)
}

// Abort aborts the job.
func (f *Future) Abort(ctx context.Context) error {
	return f.client.PerformEmpty(ctx, "POST", fmt.Sprintf("/futures/%s/abort", f.jobID), nil, nil)
}

// WaitForResult polls the job until it produces a result, and returns it.
// A job that terminates without a result is an error. The poll interval is
// fixed; cancel the context to stop waiting.
func (f *Future) WaitForResult(ctx context.Context) (any, error) {
	for {
		state, err := f.client.PerformRawJSON(ctx, "GET",
			fmt.Sprintf("/futures/%s", f.jobID),
			map[string]string{"withResult": "true"}, nil)
		if err != nil {
			return nil, err
		}

		if hasResult, _ := state["hasResult"].(bool); hasResult {
			return state["result"], nil
		}
		if alive, ok := state["alive"].(bool); ok && !alive {
			return nil, fmt.Errorf("job %s terminated without a result", f.jobID)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.pollInterval):
		}
	}
}
