package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateStats(t *testing.T) {
	t.Run("rating uses the neutral response score before any timing data", func(t *testing.T) {
		s := &Supplier{}

		s.UpdateStats(true, 0)

		assert.Equal(t, 1, s.TotalOrders)
		assert.Equal(t, 1, s.SuccessfulOrders)
		assert.Equal(t, 0.0, s.AverageResponseTime)
		// successRate 1.0 * 3 + neutral 3.0 * 0.4 + 1 = 5.2, capped at 5.
		assert.Equal(t, 5.0, s.Rating)
	})

	t.Run("fast responder keeps a high rating", func(t *testing.T) {
		s := &Supplier{}

		s.UpdateStats(true, 10)

		assert.Equal(t, 10.0, s.AverageResponseTime)
		// responseScore = 5 - 10/60 = 4.8333; rating = 3 + 1.9333 + 1 capped at 5.
		assert.Equal(t, 5.0, s.Rating)
	})

	t.Run("slow responses and failures pull the rating down", func(t *testing.T) {
		s := &Supplier{}

		s.UpdateStats(false, 300)

		// successRate 0; responseScore 0; rating = 1.
		assert.Equal(t, 1.0, s.Rating)
	})

	t.Run("response average blends previous value with the newest sample", func(t *testing.T) {
		s := &Supplier{}

		s.UpdateStats(true, 30)
		s.UpdateStats(true, 90)

		assert.Equal(t, 60.0, s.AverageResponseTime)
	})

	t.Run("zero response time leaves the average untouched", func(t *testing.T) {
		s := &Supplier{}

		s.UpdateStats(true, 45)
		s.UpdateStats(false, 0)

		assert.Equal(t, 45.0, s.AverageResponseTime)
		assert.Equal(t, 2, s.TotalOrders)
		assert.Equal(t, 1, s.SuccessfulOrders)
	})

	t.Run("response time beyond five hours floors the score at zero", func(t *testing.T) {
		s := &Supplier{}

		s.UpdateStats(true, 600)

		// responseScore floors at 0; rating = 3 + 0 + 1 = 4.
		assert.Equal(t, 4.0, s.Rating)
	})
}

func TestSuccessRate(t *testing.T) {
	s := &Supplier{}
	assert.Equal(t, 0, s.SuccessRate())

	s.TotalOrders = 3
	s.SuccessfulOrders = 2
	assert.Equal(t, 67, s.SuccessRate())
}
