package classifier

import (
	"strings"

	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/exercises"
)

// branch sends texts containing any of words to a dedicated exercise.
type branch struct {
	words    []string
	exercise exercises.Name
}

var (
	academicBranches = []branch{
		{[]string{"grading", "grade"}, exercises.GradingOverwhelm},
		{[]string{"research", "publish"}, exercises.ResearchBlocks},
		{[]string{"tenure"}, exercises.TenureTrackStress},
		{[]string{"time", "deadline"}, exercises.AcademicTimeManagement},
	}
	workLifeBranches = []branch{
		{[]string{"burnout"}, exercises.WorkLifeBoundaries},
	}
	professionalBranches = []branch{
		{[]string{"imposter", "fraud", "not good enough"}, exercises.ImposterSyndrome},
		{[]string{"student", "teaching"}, exercises.StudentRecharge},
		{[]string{"social", "connection", "isolated"}, exercises.SocialConnection},
		{[]string{"sabbatical", "break"}, exercises.Sabbatical},
	}
)

// Moods that turn the academic reply into a breathing nudge.
var strainedMoods = map[string]bool{
	"stressed":    true,
	"overwhelmed": true,
	"anxious":     true,
}

const reviewReply = "Performance reviews can be anxiety-inducing. Remember that feedback, even critical, is an opportunity for growth. You've built a career through dedication and expertise - that's something to be proud of."

// professorContext handles the academic, work-life and professional
// keyword families, in that order.
func (r *Router) professorContext(text, lowered, mood string) (Decision, bool) {
	switch {
	case r.any(lowered, r.lex.Academic.Keywords):
		if d, ok := r.branchTo(StageAcademic, lowered, academicBranches); ok {
			return d, true
		}
		return Decision{Stage: StageAcademic, Response: r.academicReply(text, mood)}, true

	case r.any(lowered, r.lex.WorkLife.Keywords):
		if d, ok := r.branchTo(StageWorkLife, lowered, workLifeBranches); ok {
			return d, true
		}
		return Decision{Stage: StageWorkLife, Response: pick(r.lex.WorkLife.Responses, text)}, true

	case r.any(lowered, r.lex.Professional.Keywords):
		if d, ok := r.branchTo(StageProfessional, lowered, professionalBranches); ok {
			return d, true
		}
		if strings.Contains(lowered, "review") || strings.Contains(lowered, "evaluation") {
			return Decision{Stage: StageProfessional, Response: reviewReply}, true
		}
		return Decision{Stage: StageProfessional, Response: pick(r.lex.Professional.Responses, text)}, true
	}
	return Decision{}, false
}

func (r *Router) branchTo(stage Stage, lowered string, branches []branch) (Decision, bool) {
	for _, b := range branches {
		if r.any(lowered, b.words) {
			return r.exercise(stage, b.exercise), true
		}
	}
	return Decision{}, false
}

func (r *Router) academicReply(text, mood string) string {
	m := strings.ToLower(mood)
	if strainedMoods[m] && len(r.lex.Academic.Responses) > 0 {
		return r.lex.Academic.Responses[0] + " Given that you're feeling " + m + " today, a quick breathing exercise might help you regain focus."
	}
	return pick(r.lex.Academic.Responses, text)
}
