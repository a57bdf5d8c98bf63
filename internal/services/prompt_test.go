package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"alfredoptarigan/career-advisor/internal/models"
)

func TestBuildInterestPromptSections(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildInterestPrompt("artificial intelligence")

	assert.Contains(t, prompt, "artificial intelligence")
	assert.Contains(t, prompt, "Summary:")
	assert.Contains(t, prompt, "Subtopics:")
	assert.Contains(t, prompt, "Details:")
	assert.Contains(t, prompt, "Next Steps:")
	assert.Contains(t, prompt, "Exactly 5 bullet lines")
	assert.Contains(t, prompt, "at most 20 words")
}

func TestBuildSubtopicPromptSections(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildSubtopicPrompt("AI", "Machine Learning")

	assert.Contains(t, prompt, `"AI"`)
	assert.Contains(t, prompt, "Machine Learning")
	assert.Contains(t, prompt, "Details:")
	assert.Contains(t, prompt, "Roadmap:")
	assert.Contains(t, prompt, "At least 5 numbered lines")
	assert.Contains(t, prompt, "<estimated duration>")
}

func TestBuildCVAnalysisPromptSections(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildCVAnalysisPrompt("John Doe, software engineer")

	assert.Contains(t, prompt, "John Doe, software engineer")
	assert.Contains(t, prompt, "ATS Assessment:")
	assert.Contains(t, prompt, "Top Job Suggestions:")
	assert.Contains(t, prompt, "Job Readiness:")
	assert.Contains(t, prompt, "Roadmap:")
}

func TestBuildPromptForTurnFollowsStateTable(t *testing.T) {
	pb := NewPromptBuilder()

	interest := pb.BuildPromptForTurn(models.StateNew, "", "finance")
	assert.Equal(t, pb.BuildInterestPrompt("finance"), interest)

	// new and await_interest route to the same template.
	assert.Equal(t, interest, pb.BuildPromptForTurn(models.StateAwaitInterest, "", "finance"))

	subtopic := pb.BuildPromptForTurn(models.StateAskedSubtopics, "finance", "Risk Manager")
	assert.Equal(t, pb.BuildSubtopicPrompt("finance", "Risk Manager"), subtopic)

	generic := pb.BuildPromptForTurn(models.StateDetailed, "finance", "tell me more")
	assert.Equal(t, pb.BuildGenericPrompt("tell me more"), generic)
}
