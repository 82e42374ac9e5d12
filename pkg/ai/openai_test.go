package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseScoreResponseFull(t *testing.T) {
	content := `{
		"score": 92,
		"feedback": "clean implementation",
		"strengths": ["idiomatic", "well tested"],
		"weakpoints": ["slow on large inputs"],
		"cheating_detected": true,
		"cheating_reason": "matches a known solution",
		"reasoning": "criteria satisfied"
	}`

	result, err := parseScoreResponse(content)
	require.NoError(t, err)
	require.Equal(t, 92, result.Score)
	require.Equal(t, "clean implementation", result.Feedback)
	require.Equal(t, []string{"idiomatic", "well tested"}, result.Strengths)
	require.Equal(t, []string{"slow on large inputs"}, result.Weakpoints)
	require.True(t, result.CheatingDetected)
	require.Equal(t, "matches a known solution", result.CheatingReason)
	require.Equal(t, "criteria satisfied", result.Reasoning)
}

func TestParseScoreResponseDefaultsOptionalFields(t *testing.T) {
	result, err := parseScoreResponse(`{"score": 40, "feedback": "needs work"}`)
	require.NoError(t, err)
	require.Equal(t, 40, result.Score)
	require.NotNil(t, result.Strengths)
	require.Empty(t, result.Strengths)
	require.NotNil(t, result.Weakpoints)
	require.Empty(t, result.Weakpoints)
	require.False(t, result.CheatingDetected)
	require.Empty(t, result.CheatingReason)
	require.Empty(t, result.Reasoning)
}

func TestParseScoreResponseClampsScore(t *testing.T) {
	high, err := parseScoreResponse(`{"score": 150, "feedback": "x"}`)
	require.NoError(t, err)
	require.Equal(t, 100, high.Score)

	low, err := parseScoreResponse(`{"score": -10, "feedback": "x"}`)
	require.NoError(t, err)
	require.Equal(t, 0, low.Score)
}

func TestParseScoreResponseRejectsMalformedJSON(t *testing.T) {
	_, err := parseScoreResponse("the model rambled instead of returning json")
	require.Error(t, err)
}

func TestBuildScoringPromptContainsCriteriaAndCode(t *testing.T) {
	prompt := buildScoringPrompt(ScoreInput{
		Code:     "def factorial(n): ...",
		Criteria: "must define factorial(n)",
	})

	require.True(t, strings.Contains(prompt, "### Criteria:"))
	require.True(t, strings.Contains(prompt, "must define factorial(n)"))
	require.True(t, strings.Contains(prompt, "### Submitted Code:"))
	require.True(t, strings.Contains(prompt, "def factorial(n): ..."))
	criteriaIdx := strings.Index(prompt, "### Criteria:")
	codeIdx := strings.Index(prompt, "### Submitted Code:")
	require.Less(t, criteriaIdx, codeIdx)
}

func TestNewOpenAIScorerRequiresAPIKey(t *testing.T) {
	_, err := NewOpenAIScorer(OpenAIConfig{})
	require.Error(t, err)
}
