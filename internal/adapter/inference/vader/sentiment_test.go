package vader

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeSentiment(t *testing.T) {
	analyzer := NewAnalyzer()

	t.Run("positive text", func(t *testing.T) {
		result, err := analyzer.AnalyzeSentiment(context.Background(),
			"I love this wonderful, amazing product!")

		require.NoError(t, err)
		assert.Equal(t, "positive", result.Label)
		assert.Greater(t, result.Score, 0.0)
	})

	t.Run("negative text", func(t *testing.T) {
		result, err := analyzer.AnalyzeSentiment(context.Background(),
			"I hate this horrible, terrible product.")

		require.NoError(t, err)
		assert.Equal(t, "negative", result.Label)
		assert.Greater(t, result.Score, 0.0)
	})

	t.Run("neutral text", func(t *testing.T) {
		result, err := analyzer.AnalyzeSentiment(context.Background(),
			"The table is in the kitchen.")

		require.NoError(t, err)
		assert.Equal(t, "neutral", result.Label)
	})

	t.Run("score stays within unit range", func(t *testing.T) {
		result, err := analyzer.AnalyzeSentiment(context.Background(),
			"Absolutely fantastic, the best thing I have ever used!!!")

		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.Score, 0.0)
		assert.LessOrEqual(t, result.Score, 1.0)
	})
}
