package stats

import (
	"strings"
	"testing"
	"time"
)

func TestSummarize(t *testing.T) {
	sum := summarize(time.Second, []Sample{
		{HeapAlloc: 10, Sys: 100, RSS: 1000, CPUPercent: 10, NumGoroutine: 3, NumGC: 1},
		{HeapAlloc: 30, Sys: 90, RSS: 1500, CPUPercent: 30, NumGoroutine: 8, NumGC: 4},
		{HeapAlloc: 20, Sys: 120, RSS: 1200, CPUPercent: 20, NumGoroutine: 5, NumGC: 4},
	})
	if sum.Samples != 3 || sum.PeakHeapAlloc != 30 || sum.PeakSys != 120 || sum.PeakRSS != 1500 {
		t.Fatalf("unexpected memory peaks %+v", sum)
	}
	if sum.PeakCPUPercent != 30 || sum.AvgCPUPercent != 20 || sum.PeakGoroutines != 8 || sum.GCCycles != 4 {
		t.Fatalf("unexpected cpu peaks %+v", sum)
	}
	if empty := summarize(0, nil); empty.AvgCPUPercent != 0 || empty.Samples != 0 {
		t.Fatalf("expected an empty summary, got %+v", empty)
	}
}

func TestCollector(t *testing.T) {
	c, err := NewCollector(5 * time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.Start()
	time.Sleep(20 * time.Millisecond)
	sum := c.Stop()
	if sum.Samples < 2 {
		t.Fatalf("expected at least the first and last sample, got %d", sum.Samples)
	}
	if sum.PeakHeapAlloc == 0 {
		t.Fatalf("expected heap usage to be recorded")
	}

	var sb strings.Builder
	if _, err := sum.WriteTo(&sb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(sb.String(), "peak heap") {
		t.Fatalf("unexpected report %q", sb.String())
	}
}
