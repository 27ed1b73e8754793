// Package stats samples process resource usage while a batch job runs.
package stats

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v4/process"
)

// Sample is one reading of runtime and process counters.
type Sample struct {
	Elapsed      time.Duration
	HeapAlloc    uint64
	Sys          uint64
	RSS          uint64
	CPUPercent   float64
	NumGoroutine int
	NumGC        uint32
}

// Summary holds the peaks over every sample.
type Summary struct {
	Duration       time.Duration
	Samples        int
	PeakHeapAlloc  uint64
	PeakSys        uint64
	PeakRSS        uint64
	PeakCPUPercent float64
	AvgCPUPercent  float64
	PeakGoroutines int
	GCCycles       uint32
}

// Collector samples at a fixed interval between Start and Stop.
type Collector struct {
	mu       sync.Mutex
	samples  []Sample
	start    time.Time
	interval time.Duration
	proc     *process.Process
	stop     chan struct{}
	done     chan struct{}
}

func NewCollector(interval time.Duration) (*Collector, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("failed to get process info: %w", err)
	}
	return &Collector{
		interval: interval,
		proc:     proc,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

func (c *Collector) Start() {
	c.start = time.Now()
	go c.loop()
}

func (c *Collector) loop() {
	defer close(c.done)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.sample()
	for {
		select {
		case <-c.stop:
			c.sample()
			return
		case <-ticker.C:
			c.sample()
		}
	}
}

func (c *Collector) sample() {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	s := Sample{
		Elapsed:      time.Since(c.start),
		HeapAlloc:    mem.HeapAlloc,
		Sys:          mem.Sys,
		NumGoroutine: runtime.NumGoroutine(),
		NumGC:        mem.NumGC,
	}
	if info, err := c.proc.MemoryInfo(); err == nil && info != nil {
		s.RSS = info.RSS
	}
	if cpu, err := c.proc.CPUPercent(); err == nil {
		s.CPUPercent = cpu
	}

	c.mu.Lock()
	c.samples = append(c.samples, s)
	c.mu.Unlock()
}

// Stop ends sampling and summarizes the run.
func (c *Collector) Stop() Summary {
	close(c.stop)
	<-c.done

	c.mu.Lock()
	defer c.mu.Unlock()
	return summarize(time.Since(c.start), c.samples)
}

func summarize(d time.Duration, samples []Sample) Summary {
	sum := Summary{Duration: d, Samples: len(samples)}
	var totalCPU float64
	for _, s := range samples {
		sum.PeakHeapAlloc = max(sum.PeakHeapAlloc, s.HeapAlloc)
		sum.PeakSys = max(sum.PeakSys, s.Sys)
		sum.PeakRSS = max(sum.PeakRSS, s.RSS)
		sum.PeakCPUPercent = max(sum.PeakCPUPercent, s.CPUPercent)
		sum.PeakGoroutines = max(sum.PeakGoroutines, s.NumGoroutine)
		sum.GCCycles = max(sum.GCCycles, s.NumGC)
		totalCPU += s.CPUPercent
	}
	if len(samples) > 0 {
		sum.AvgCPUPercent = totalCPU / float64(len(samples))
	}
	return sum
}

// WriteTo prints a short human readable report.
func (s Summary) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintf(w,
		"duration %s, %d samples\n"+
			"peak heap %s, peak sys %s, peak rss %s\n"+
			"cpu peak %.1f%% avg %.1f%%, goroutines %d, gc cycles %d\n",
		s.Duration.Round(time.Millisecond), s.Samples,
		humanize.IBytes(s.PeakHeapAlloc), humanize.IBytes(s.PeakSys), humanize.IBytes(s.PeakRSS),
		s.PeakCPUPercent, s.AvgCPUPercent, s.PeakGoroutines, s.GCCycles,
	)
	return int64(n), err
}
