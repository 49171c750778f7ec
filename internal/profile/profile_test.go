package profile

import (
	"testing"
	"time"
)

// fixedClock steps a fake clock by one tick per call.
func fixedClock(start time.Time, tick time.Duration) func() time.Time {
	now := start
	return func() time.Time {
		current := now
		now = now.Add(tick)
		return current
	}
}

func TestRuntimeAccumulatesAcrossScopes(t *testing.T) {
	p := New()
	p.now = fixedClock(time.Unix(0, 0), time.Second)

	p.Start("query0") // t=0
	p.Stop("query0")  // t=1 -> total 1s
	p.Start("query0") // t=2
	p.Stop("query0")  // t=3 -> total 2s

	if got := p.Runtime("query0"); got != 2*time.Second {
		t.Fatalf("unexpected runtime: %v", got)
	}
}

func TestRuntimeIncludesLiveScope(t *testing.T) {
	p := New()
	p.now = fixedClock(time.Unix(0, 0), time.Second)

	p.Start("query0") // t=0
	if got := p.Runtime("query0"); got != time.Second {
		t.Fatalf("unexpected live runtime: %v", got)
	}
}

func TestStartWhileRunningIsNoop(t *testing.T) {
	p := New()
	p.now = fixedClock(time.Unix(0, 0), time.Second)

	p.Start("query0") // t=0
	p.Start("query0") // ignored
	p.Stop("query0")  // t=1

	if got := p.Runtime("query0"); got != time.Second {
		t.Fatalf("unexpected runtime: %v", got)
	}
}

func TestStopWithoutStartIsNoop(t *testing.T) {
	p := New()
	p.Stop("query0")
	if got := p.Runtime("query0"); got != 0 {
		t.Fatalf("unexpected runtime: %v", got)
	}
	if got := p.Runtime("unknown"); got != 0 {
		t.Fatalf("unexpected runtime for unknown scope: %v", got)
	}
}
