package joining_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"samplekit/internal/joining"
	"samplekit/internal/pairing"
)

type fakeProcessor struct {
	active  atomic.Int32
	peak    atomic.Int32
	fail    map[string]bool
	delay   time.Duration
	mu      sync.Mutex
	visited []string
}

func (p *fakeProcessor) Process(ctx context.Context, pair pairing.Pair) error {
	n := p.active.Add(1)
	defer p.active.Add(-1)
	for {
		peak := p.peak.Load()
		if n <= peak || p.peak.CompareAndSwap(peak, n) {
			break
		}
	}
	time.Sleep(p.delay)

	p.mu.Lock()
	p.visited = append(p.visited, pair.Name)
	p.mu.Unlock()

	if p.fail[pair.Name] {
		return errors.New("boom")
	}
	return nil
}

func makePairs(n int) []pairing.Pair {
	pairs := make([]pairing.Pair, n)
	for i := range pairs {
		name := fmt.Sprintf("p%02d", i)
		pairs[i] = pairing.Pair{Name: name, Target: name + ".flac"}
	}
	return pairs
}

func TestRunnerCollectsFailuresWithoutStopping(t *testing.T) {
	proc := &fakeProcessor{fail: map[string]bool{"p01": true, "p03": true}}
	runner := joining.NewRunner(proc, 2, nil)

	var (
		mu    sync.Mutex
		dones []int
	)
	runner.OnProgress(func(done, total int, _ pairing.Pair, _ error) {
		mu.Lock()
		defer mu.Unlock()
		if total != 5 {
			t.Errorf("total = %d", total)
		}
		dones = append(dones, done)
	})

	summary, err := runner.Run(context.Background(), makePairs(5))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Total != 5 || summary.Started != 5 || summary.Succeeded != 3 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if len(summary.Failures) != 2 {
		t.Fatalf("expected 2 failures, got %+v", summary.Failures)
	}
	if len(proc.visited) != 5 {
		t.Fatalf("expected every pair processed, got %v", proc.visited)
	}
	if got := fmt.Sprint(dones); got != "[1 2 3 4 5]" {
		t.Fatalf("expected sequential progress counts, got %s", got)
	}
	joined := summary.Err()
	if joined == nil || !strings.Contains(joined.Error(), "p01.flac: boom") {
		t.Fatalf("unexpected joined error %v", joined)
	}
}

func TestRunnerRespectsWorkerLimit(t *testing.T) {
	proc := &fakeProcessor{delay: 20 * time.Millisecond}
	runner := joining.NewRunner(proc, 3, nil)
	if _, err := runner.Run(context.Background(), makePairs(9)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if peak := proc.peak.Load(); peak > 3 {
		t.Fatalf("expected at most 3 concurrent workers, saw %d", peak)
	}
}

func TestRunnerStopsLaunchingAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	proc := &fakeProcessor{}
	summary, err := joining.NewRunner(proc, 1, nil).Run(ctx, makePairs(4))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if summary.Started != 0 || len(proc.visited) != 0 {
		t.Fatalf("expected nothing started, got %+v", summary)
	}
}

func TestRunnerEmptyInput(t *testing.T) {
	summary, err := joining.NewRunner(&fakeProcessor{}, 0, nil).Run(context.Background(), nil)
	if err != nil || summary.Total != 0 || summary.Err() != nil {
		t.Fatalf("unexpected result %+v, %v", summary, err)
	}
}
