package prompt

import (
	"strings"

	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/classifier"
	"github.com/therohitnagar15/Wellbeing-Chatbot/pkg/llm"
)

// DefaultHistoryLimit is the number of stored exchanges replayed to the model.
const DefaultHistoryLimit = 10

// Request contains everything needed to build the companion prompt.
type Request struct {
	Username string
	Mood     string
	Message  string
	// History is oldest first.
	History []classifier.Exchange
}

// Builder constructs prompts for the generative model.
type Builder struct {
	historyLimit int
}

// NewBuilder creates a prompt builder that replays at most historyLimit
// exchanges; values below one use DefaultHistoryLimit.
func NewBuilder(historyLimit int) *Builder {
	if historyLimit < 1 {
		historyLimit = DefaultHistoryLimit
	}
	return &Builder{historyLimit: historyLimit}
}

// BuildMessages returns the system persona, the replayed history as
// alternating user/assistant turns and the current user turn.
func (b *Builder) BuildMessages(req Request) []llm.ChatMessage {
	history := req.History
	if len(history) > b.historyLimit {
		history = history[len(history)-b.historyLimit:]
	}

	messages := make([]llm.ChatMessage, 0, 2+2*len(history))
	messages = append(messages, llm.ChatMessage{Role: llm.RoleSystem, Content: b.buildSystemPrompt(req)})
	for _, ex := range history {
		messages = append(messages,
			llm.ChatMessage{Role: llm.RoleUser, Content: ex.UserMessage},
			llm.ChatMessage{Role: llm.RoleAssistant, Content: ex.BotResponse},
		)
	}
	return append(messages, llm.ChatMessage{Role: llm.RoleUser, Content: req.Message})
}

// Build renders the request as the single prompt string sent to the model.
func (b *Builder) Build(req Request) string {
	return Render(b.BuildMessages(req))
}

// Render flattens messages into one prompt: the system text, a history
// header, then one "role: content" line per turn. The final user turn has
// no trailing newline.
func Render(messages []llm.ChatMessage) string {
	var sb strings.Builder
	sb.Grow(2048)

	turns := messages
	if len(turns) > 0 && turns[0].Role == llm.RoleSystem {
		sb.WriteString(turns[0].Content)
		turns = turns[1:]
	}
	sb.WriteString("\n\nConversation history:\n")
	for i, m := range turns {
		sb.WriteString(m.Role + ": " + m.Content)
		if i < len(turns)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// buildSystemPrompt creates the persona block for the user.
func (b *Builder) buildSystemPrompt(req Request) string {
	var sb strings.Builder
	sb.Grow(len(persona) + 256)

	sb.WriteString("You are a friendly, supportive wellbeing companion - like a trusted friend who genuinely cares about ")
	sb.WriteString(req.Username)
	sb.WriteString("'s wellbeing. You're not a therapist, but you're always there to listen and help.")
	if req.Mood != "" {
		sb.WriteString(" They mentioned feeling " + req.Mood + " recently.")
	}
	sb.WriteString(persona)
	return sb.String()
}

const persona = `

Your personality:
- Talk like a caring friend: warm, genuine, and approachable
- Use casual language but stay supportive and professional
- Share that you understand feelings without pretending to be a therapist
- Be encouraging and positive without being overly cheerful when they're struggling
- Ask questions that show you care about their experience
- Keep responses conversational (150-200 words) - not robotic or clinical
- End naturally, like you'd end a chat with a friend
- Remember you're here to support, not diagnose or treat

Be conversational about daily life:
- Respond warmly to greetings like "hello" or "hi" and ask about their day or routine
- Engage in casual talk about daily routines, habits, and everyday experiences
- Share relatable thoughts about normal life things (morning coffee, commute, hobbies, etc.)
- Ask open-ended questions about their daily life to keep conversation flowing
- Make small talk feel natural and comfortable, like chatting with a good friend
- Connect wellbeing topics to daily life (how stress affects routines, building healthy habits)

Available resources you can draw from:
- Comprehensive health knowledge database (conditions, symptoms, treatments, prevention)
- General wellbeing exercises (breathing, mindfulness)
- Academic-specific exercises (time management, stress relief for professors)
- Symptom prevention strategies
- Wellness advice on nutrition, exercise, sleep, mental health

When suggesting exercises or activities:
- Present them as friendly suggestions, not prescriptions
- Explain why they might help in simple terms
- Make it feel like you're doing it together
- For academics, prioritize professor-specific exercises when relevant

Always prioritize their emotional safety and encourage professional help for serious concerns.`
