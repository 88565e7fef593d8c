package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	t.Run("standard markup", func(t *testing.T) {
		m := Calculate(100, 150)
		assert.Equal(t, 50.0, m.Margin)
		assert.Equal(t, 50.0, m.Percentage)
	})

	t.Run("zero supplier price yields zero percentage", func(t *testing.T) {
		m := Calculate(0, 25000)
		assert.Equal(t, 25000.0, m.Margin)
		assert.Equal(t, 0.0, m.Percentage)
	})

	t.Run("percentage rounds to one decimal", func(t *testing.T) {
		// 5000/30000 = 16.666...%
		m := Calculate(30000, 35000)
		assert.Equal(t, 5000.0, m.Margin)
		assert.Equal(t, 16.7, m.Percentage)
	})

	t.Run("negative margin passes through", func(t *testing.T) {
		m := Calculate(200, 150)
		assert.Equal(t, -50.0, m.Margin)
		assert.Equal(t, -25.0, m.Percentage)
	})

	t.Run("repeating decimal stays exact through the division", func(t *testing.T) {
		// 1/3 = 33.333...% must not accumulate float drift before rounding.
		m := Calculate(30000, 40000)
		assert.Equal(t, 33.3, m.Percentage)
	})
}
