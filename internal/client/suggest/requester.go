package suggest

import (
	"context"
	"sync/atomic"
)

// Requester tags every call with a sequence number. Only the response to the
// most recent call is delivered; older ones resolve to ErrStaleResponse.
type Requester struct {
	s   Suggester
	seq atomic.Uint64
}

func NewRequester(s Suggester) *Requester {
	return &Requester{s: s}
}

func (r *Requester) Suggest(ctx context.Context, in Input) (Output, error) {
	tag := r.seq.Add(1)
	out, err := r.s.Suggest(ctx, in)
	if r.seq.Load() != tag {
		return Output{}, ErrStaleResponse
	}
	return out, err
}

// Invalidate marks any in-flight call as stale, e.g. when the user leaves
// the suggestion view or logs out.
func (r *Requester) Invalidate() {
	r.seq.Add(1)
}
