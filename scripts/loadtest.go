package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// Read-load generator for the aggregation endpoints. Every request fans out to the
// ticketing API, so keep the rate low against real upstream accounts.
func main() {
	rps := flag.Int("rps", 5, "Target requests per second across all workers")
	duration := flag.Duration("duration", 30*time.Second, "Test duration")
	workers := flag.Int("workers", 4, "Number of concurrent workers")
	baseURL := flag.String("url", "http://localhost:8080", "API base URL")
	paths := flag.String("paths", "/api/events,/api/dashboard/summary,/api/venues", "Comma-separated paths to rotate through")
	flag.Parse()

	targets := strings.Split(*paths, ",")
	if *rps < 1 || *workers < 1 {
		fmt.Println("rps and workers must be positive")
		return
	}

	fmt.Printf("Load Test Configuration:\n")
	fmt.Printf("  Target RPS: %d req/sec\n", *rps)
	fmt.Printf("  Duration: %v\n", *duration)
	fmt.Printf("  Workers: %d\n", *workers)
	fmt.Printf("  Paths: %v\n\n", targets)

	var successCount, errorCount int64
	var mu sync.Mutex
	latencies := make([]time.Duration, 0, *rps*int(duration.Seconds()))

	client := &http.Client{Timeout: 60 * time.Second}
	interval := time.Duration(float64(time.Second) * float64(*workers) / float64(*rps))

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)

	for i := 0; i < *workers; i++ {
		g.Go(func() error {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for n := i; ; n += *workers {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
				}

				took, err := get(ctx, client, *baseURL+targets[n%len(targets)])
				if err != nil {
					if ctx.Err() != nil {
						return nil
					}
					atomic.AddInt64(&errorCount, 1)
					continue
				}
				atomic.AddInt64(&successCount, 1)
				mu.Lock()
				latencies = append(latencies, took)
				mu.Unlock()
			}
		})
	}

	_ = g.Wait()

	elapsed := time.Since(start).Seconds()
	slices.Sort(latencies)
	total := successCount + errorCount

	fmt.Printf("\n========== FINAL RESULTS ==========\n")
	fmt.Printf("Duration:       %.2f seconds\n", elapsed)
	fmt.Printf("Requests:       %d (success) / %d (error)\n", successCount, errorCount)
	fmt.Printf("Average RPS:    %.1f req/sec\n", float64(total)/elapsed)
	fmt.Printf("Latency p50:    %v\n", percentile(latencies, 0.50))
	fmt.Printf("Latency p95:    %v\n", percentile(latencies, 0.95))
	fmt.Printf("Latency p99:    %v\n", percentile(latencies, 0.99))
	if total > 0 {
		fmt.Printf("Error Rate:     %.2f%%\n", float64(errorCount)/float64(total)*100)
	}
	fmt.Printf("====================================\n")
}

func get(ctx context.Context, client *http.Client, url string) (time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return 0, fmt.Errorf("status: %d", resp.StatusCode)
	}
	return time.Since(start), nil
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(float64(len(sorted)-1) * p)
	return sorted[idx]
}
