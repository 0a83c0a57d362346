package inventory

import (
	"fmt"

	"github.com/go-mclib/inventory/pkg/item"
)

type ResultType int

const (
	Success ResultType = iota
	Failure
)

func (t ResultType) String() string {
	if t == Success {
		return "success"
	}
	return "failure"
}

// Result describes the outcome of Offer or Set. Rejections are never errors:
// the caller decides what to do with the remainder (usually drop it in the world).
//
// For every call, Accepted + item.Quantity(Rejected) equals the offered quantity.
type Result struct {
	Type     ResultType
	Accepted int
	Replaced *item.Stack
	Rejected *item.Stack
}

func (r Result) OK() bool { return r.Type == Success }

func (r Result) String() string {
	return fmt.Sprintf("%s accepted=%d replaced=%s rejected=%s", r.Type, r.Accepted, r.Replaced, r.Rejected)
}

func accepted(n int, rejected *item.Stack) Result {
	t := Success
	if n == 0 {
		t = Failure
	}
	return Result{Type: t, Accepted: n, Rejected: rejected}
}

func rejectAll(s *item.Stack) Result {
	return Result{Type: Failure, Rejected: s.Copy()}
}
