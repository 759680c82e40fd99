package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/payloop/propman-backend/internal/service"
)

func TestFanOutPartialFailure(t *testing.T) {
	// Items 2 and 4 fail; the rest must still be attempted, in order.
	attempted := []int{}
	results := service.FanOut(5, 0, func(i int) bool {
		attempted = append(attempted, i)
		return i != 1 && i != 3
	})

	assert.Equal(t, []bool{true, false, true, false, true}, results)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, attempted)
	assert.Equal(t, 3, service.CountSuccess(results))
}

func TestFanOutPanicIsolation(t *testing.T) {
	results := service.FanOut(3, 0, func(i int) bool {
		if i == 1 {
			panic("boom")
		}
		return true
	})
	assert.Equal(t, []bool{true, false, true}, results)
}

func TestFanOutDelayBetweenItems(t *testing.T) {
	start := time.Now()
	service.FanOut(3, 20*time.Millisecond, func(i int) bool { return true })
	elapsed := time.Since(start)

	// Two gaps of 20ms between three items.
	assert.GreaterOrEqual(t, elapsed, 40*time.Millisecond)
}

func TestFanOutEmpty(t *testing.T) {
	results := service.FanOut(0, time.Second, func(i int) bool { return true })
	assert.Empty(t, results)
	assert.Equal(t, 0.0, service.SuccessRate(results))
}

func TestSuccessRate(t *testing.T) {
	assert.Equal(t, 60.0, service.SuccessRate([]bool{true, false, true, false, true}))
	assert.Equal(t, 100.0, service.SuccessRate([]bool{true}))
}
