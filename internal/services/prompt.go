package services

import (
	"fmt"

	"alfredoptarigan/career-advisor/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildPromptForTurn selects the template for one user turn. new and
// await_interest both route to the interest template; asked_subtopics expects
// the user to have picked a subtopic of the conversation topic; detailed is
// the terminal catch-all.
func (pb *PromptBuilder) BuildPromptForTurn(state models.ConversationState, topic, userInput string) string {
	switch state {
	case models.StateNew, models.StateAwaitInterest:
		return pb.BuildInterestPrompt(userInput)
	case models.StateAskedSubtopics:
		return pb.BuildSubtopicPrompt(topic, userInput)
	default:
		return pb.BuildGenericPrompt(userInput)
	}
}

// BuildInterestPrompt creates the prompt for the first user turn, where the
// input names an area of interest.
func (pb *PromptBuilder) BuildInterestPrompt(userInput string) string {
	return fmt.Sprintf(`You are a friendly career advisor helping someone explore a field they are interested in.

The user is interested in: %s

Answer using EXACTLY these four labeled sections, in this order:

Summary:
A short overview (2-3 sentences) of what careers in this field look like.

Subtopics:
Exactly 5 bullet lines, each starting with "- ", naming a specific specialization or sub-field the user could pursue.

Details:
A few sentences on the skills and background these specializations typically require.

Next Steps:
Concrete actions the user can take this month to explore the field.

End your reply with one follow-up question of at most 20 words asking which subtopic they would like to explore.`,
		userInput)
}

// BuildSubtopicPrompt creates the prompt for the second turn, after the user
// has picked one of the suggested subtopics of their chosen topic.
func (pb *PromptBuilder) BuildSubtopicPrompt(topic, userInput string) string {
	return fmt.Sprintf(`You are a friendly career advisor. The user previously chose the topic "%s" and has now picked this specialization to go deeper on: %s

Answer using EXACTLY these two labeled sections, in this order:

Details:
An in-depth explanation (4-6 sentences) of what working in this specialization involves, typical roles, and expected compensation range.

Roadmap:
At least 5 numbered lines of the form "<n>. <step> (<estimated duration>)" describing a learning path from beginner to employable, ordered from first to last. Name a concrete resource (course, book, or platform) in a step where one applies.

End your reply with one follow-up question of at most 20 words.`,
		topic, userInput)
}

// BuildGenericPrompt creates the terminal-state prompt used for every turn
// once the conversation has gone detailed.
func (pb *PromptBuilder) BuildGenericPrompt(userInput string) string {
	return fmt.Sprintf(`You are a friendly career advisor continuing an ongoing conversation.

The user says: %s

Answer using EXACTLY these four labeled sections, in this order:

Summary:
A direct answer to what the user asked (2-3 sentences).

Subtopics:
Exactly 5 bullet lines, each starting with "- ", naming related angles worth exploring.

Details:
Supporting detail for your answer.

Next Steps:
Concrete actions the user can take next.

End your reply with one follow-up question of at most 20 words.`,
		userInput)
}

// BuildCVAnalysisPrompt creates the one-shot prompt for an uploaded CV. The
// caller truncates cvText before building the prompt.
func (pb *PromptBuilder) BuildCVAnalysisPrompt(cvText string) string {
	return fmt.Sprintf(`You are an expert career advisor and ATS (Applicant Tracking System) reviewer analyzing a candidate's CV.

CANDIDATE CV:
%s

Answer using EXACTLY these four labeled sections, in this order:

ATS Assessment:
How well this CV would pass automated screening - formatting, keywords, measurable achievements. Note 2-3 concrete fixes.

Top Job Suggestions:
Exactly 5 bullet lines, each starting with "- ", naming a role this candidate is a strong match for, with a one-phrase reason.

Job Readiness:
An honest readiness verdict for the suggested roles, naming the biggest gaps.

Roadmap:
At least 5 numbered lines of the form "<n>. <step> (<estimated duration>)" to close the gaps, ordered from first to last.

Be specific and reference actual content from the CV.`,
		cvText)
}
