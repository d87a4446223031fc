package freshness

import (
	"context"
	"sync"
	"testing"
)

func TestLaterRequestWinsWhenEarlierCompletesLast(t *testing.T) {
	tr := NewTracker()
	ctx := context.Background()

	ctxA, seqA := tr.Begin(ctx, "s1")
	_, seqAB := tr.Begin(ctx, "s1")

	if ctxA.Err() == nil {
		t.Fatal("superseded request context should be cancelled")
	}
	if !tr.Commit("s1", seqAB) {
		t.Fatal("latest request should commit")
	}
	if tr.Commit("s1", seqA) {
		t.Fatal("superseded request must be discarded")
	}
}

func TestEarlierCompletingFirstIsStillDiscarded(t *testing.T) {
	tr := NewTracker()
	ctx := context.Background()

	_, seqA := tr.Begin(ctx, "s1")
	_, seqAB := tr.Begin(ctx, "s1")

	if tr.Commit("s1", seqA) {
		t.Fatal("superseded request must be discarded")
	}
	if !tr.Commit("s1", seqAB) {
		t.Fatal("latest request should commit")
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	tr := NewTracker()
	ctx := context.Background()

	ctx1, seq1 := tr.Begin(ctx, "s1")
	_, seq2 := tr.Begin(ctx, "s2")

	if ctx1.Err() != nil {
		t.Fatal("other session must not cancel s1")
	}
	if !tr.Commit("s1", seq1) || !tr.Commit("s2", seq2) {
		t.Fatal("both sessions should commit")
	}
	if tr.Pending() != 0 {
		t.Fatalf("expected no pending sessions, got %d", tr.Pending())
	}
}

func TestSequenceNotReusedAfterRelease(t *testing.T) {
	tr := NewTracker()
	ctx := context.Background()

	_, first := tr.Begin(ctx, "s1")
	if !tr.Commit("s1", first) {
		t.Fatal("first should commit")
	}
	_, second := tr.Begin(ctx, "s1")
	if second == first {
		t.Fatal("sequence reused")
	}
	if tr.Commit("s1", first) {
		t.Fatal("old sequence must not commit against a new request")
	}
}

func TestParentCancellationPropagates(t *testing.T) {
	tr := NewTracker()
	parent, cancel := context.WithCancel(context.Background())
	reqCtx, _ := tr.Begin(parent, "s1")
	cancel()
	if reqCtx.Err() == nil {
		t.Fatal("request context should follow its parent")
	}
}

func TestConcurrentBeginOnlyOneCommits(t *testing.T) {
	tr := NewTracker()
	ctx := context.Background()

	const n = 32
	seqs := make([]uint64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, seqs[i] = tr.Begin(ctx, "shared")
		}(i)
	}
	wg.Wait()

	committed := 0
	for _, seq := range seqs {
		if tr.Commit("shared", seq) {
			committed++
		}
	}
	if committed != 1 {
		t.Fatalf("expected exactly one commit, got %d", committed)
	}
}
