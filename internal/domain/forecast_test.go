package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForecastAssumptions_AddYear(t *testing.T) {
	t.Run("Adiciona após o último ano", func(t *testing.T) {
		assumptions := DefaultForecastAssumptions()

		label := assumptions.AddYear(0.03)

		assert.Equal(t, "Year 6", label)
		assert.Len(t, assumptions, 6)
		assert.Equal(t, 0.03, assumptions.Rate(6))
	})

	t.Run("Não sobrescreve ano existente após remoção", func(t *testing.T) {
		assumptions := DefaultForecastAssumptions()
		assumptions["Year 5"] = 0.07

		assert.True(t, assumptions.RemoveYear("Year 2"))
		label := assumptions.AddYear(0.04)

		assert.Equal(t, "Year 6", label)
		assert.Equal(t, 0.07, assumptions.Rate(5))
		assert.Equal(t, 0.04, assumptions.Rate(6))
		assert.Equal(t, 0.0, assumptions.Rate(2))
		assert.Equal(t, []string{"Year 1", "Year 3", "Year 4", "Year 5", "Year 6"}, assumptions.Labels())
	})

	t.Run("Premissas vazias começam no ano 1", func(t *testing.T) {
		assumptions := ForecastAssumptions{}

		assert.Equal(t, "Year 1", assumptions.AddYear(0.02))
	})

	t.Run("Rótulos fora do padrão são ignorados", func(t *testing.T) {
		assumptions := ForecastAssumptions{"Year 2": 0.01, "custom": 0.5}

		assert.Equal(t, "Year 3", assumptions.AddYear(0.02))
	})
}

func TestForecastAssumptions_RemoveYear(t *testing.T) {
	assumptions := DefaultForecastAssumptions()

	assert.True(t, assumptions.RemoveYear("Year 1"))
	assert.False(t, assumptions.RemoveYear("Year 1"))
	assert.Len(t, assumptions, 4)
}

func TestForecastAssumptions_Labels(t *testing.T) {
	assumptions := ForecastAssumptions{"Year 10": 0, "Year 2": 0, "extra": 0, "Year 1": 0}

	assert.Equal(t, []string{"Year 1", "Year 2", "Year 10", "extra"}, assumptions.Labels())
}
