// internal/service/fanout.go
package service

import (
	"log"
	"time"
)

// FanOut applies perItem to indexes 0..n-1 in order, pausing delay between
// items to stay under the gateway's per-second throughput limit. One item
// failing or panicking is recorded as false and does not stop the rest:
// the result slice always has one entry per item, in input order.
func FanOut(n int, delay time.Duration, perItem func(i int) bool) []bool {
	results := make([]bool, 0, n)
	for i := 0; i < n; i++ {
		if i > 0 && delay > 0 {
			time.Sleep(delay)
		}
		results = append(results, runItem(i, perItem))
	}
	return results
}

func runItem(i int, perItem func(i int) bool) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Println("⚠️ fan-out item", i, "panicked:", r)
			ok = false
		}
	}()
	return perItem(i)
}

// CountSuccess counts the true entries in a fan-out result.
func CountSuccess(results []bool) int {
	count := 0
	for _, ok := range results {
		if ok {
			count++
		}
	}
	return count
}

// SuccessRate returns the success percentage, 0 for an empty result.
func SuccessRate(results []bool) float64 {
	if len(results) == 0 {
		return 0
	}
	return float64(CountSuccess(results)) / float64(len(results)) * 100
}
