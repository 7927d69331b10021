// Package fallback produces supportive replies without a generative model.
// It is used whenever the model is unavailable, times out, or returns
// nothing.
package fallback

import "strings"

// Reason names the rule that produced a fallback reply.
type Reason string

const (
	ReasonSadness    Reason = "sadness"
	ReasonAnxiety    Reason = "anxiety"
	ReasonStress     Reason = "stress"
	ReasonLoneliness Reason = "loneliness"
	ReasonTiredness  Reason = "tiredness"
	ReasonAnger      Reason = "anger"
	ReasonGratitude  Reason = "gratitude"
	ReasonHappiness  Reason = "happiness"
	ReasonHelp       Reason = "seeking_help"
	ReasonQuestion   Reason = "question"
	ReasonMood       Reason = "mood"
	ReasonGeneric    Reason = "generic"
)

// Response is a fallback reply and the rule that chose it.
type Response struct {
	Content string
	Reason  Reason
}

type emotion struct {
	reason   Reason
	keywords []string
	withHelp string
	alone    string
}

var emotions = []emotion{
	{
		reason:   ReasonSadness,
		keywords: []string{"sad", "depressed", "depression", "down", "blue", "unhappy", "miserable", "hopeless", "crying", "tears", "heartbroken", "low mood"},
		withHelp: "I hear you're feeling sad and need help. Right now, try this 3-step approach: 1) Take 5 slow deep breaths, 2) Name one small thing you're grateful for, 3) Do one tiny comforting action like drinking water or stretching. Would you like me to guide you through a full breathing exercise?",
		alone:    "Sadness can be really heavy. You're not alone in this feeling. Try reaching out to one person you trust, even just to say 'I'm having a tough day.' Or do something nurturing like a warm shower or favorite comfort food. What usually helps when you feel this way?",
	},
	{
		reason:   ReasonAnxiety,
		keywords: []string{"anxious", "anxiety", "worried", "worry", "nervous", "panic", "panicking", "scared", "fear", "frightened", "heart racing", "chest tight", "can't breathe"},
		withHelp: "For your anxiety right now: Sit comfortably, place one hand on your belly. Breathe in slowly for 4 counts (feel your belly rise), hold for 4, breathe out for 6 counts. Repeat 4 times. This calms your nervous system. Would you like me to walk you through this breathing exercise step by step?",
		alone:    "Anxiety can make everything feel scary and uncertain. Try this grounding technique: Look around and name 5 things you can see, 4 things you can touch, 3 things you can hear, 2 things you can smell, 1 thing you can taste. This brings you back to the present moment. What triggers your anxiety most?",
	},
	{
		reason:   ReasonStress,
		keywords: []string{"stressed", "stress", "overwhelmed", "overwhelming", "pressure", "tension", "burnout", "burned out", "can't cope", "too much", "breaking point"},
		withHelp: "Let's tackle your stress with specific steps: 1) Stop what you're doing for 2 minutes, 2) Do shoulder rolls and neck stretches, 3) Take 10 slow breaths, 4) Write down one thing you can control. Which of these would you like to try first?",
		alone:    "Stress can feel like carrying a heavy load. Try this quick reset: Step away from your tasks, do 10 jumping jacks or march in place, then take 3 deep breaths. What's the main thing stressing you out right now that I can help you think through?",
	},
	{
		reason:   ReasonLoneliness,
		keywords: []string{"lonely", "alone", "isolated", "isolation", "no one", "abandoned", "friendless", "empty", "disconnect"},
		withHelp: "For loneliness, start with small connections: 1) Send a text to one friend saying 'Thinking of you', 2) Join an online community related to your interests, 3) Consider volunteering virtually. Would you like specific suggestions for online communities or social activities?",
		alone:    "Feeling lonely hurts, and it's more common than people think. Consider calling a family member, joining a local club, or even talking to someone at a store. Sometimes just hearing another person's voice helps. What kind of social connection do you miss most?",
	},
	{
		reason:   ReasonTiredness,
		keywords: []string{"tired", "exhausted", "fatigued", "fatigue", "no energy", "sleepy", "drained", "worn out", "lethargic"},
		withHelp: "To combat fatigue: 1) Get bright light (open curtains or go outside), 2) Do 5 minutes of light movement like walking, 3) Drink a glass of water, 4) Eat something with protein. Would you like detailed sleep hygiene tips or energy-boosting food suggestions?",
		alone:    "Fatigue can make everything feel harder. Try getting some natural sunlight, taking a short walk, or doing gentle stretches. What do you think might be causing your tiredness - lack of sleep, stress, or something else?",
	},
	{
		reason:   ReasonAnger,
		keywords: []string{"angry", "anger", "frustrated", "frustration", "irritated", "irritation", "mad", "furious", "upset", "annoyed"},
		withHelp: "For anger management: 1) Step back physically from the situation, 2) Take slow breaths - inhale for 4, exhale for 6, 3) Write down what's making you angry and why. Would you like a full anger management technique or ways to express anger constructively?",
		alone:    "Anger is a valid emotion that needs healthy expression. Try going for a brisk walk, punching a pillow, or writing down your feelings. Understanding what triggered your anger can help you respond better. What happened to make you feel this way?",
	},
}

var (
	helpPhrases      = []string{"help me", "i need help", "what can i do", "how can i", "what should i", "give me advice", "suggest", "recommend"}
	gratitudeWords   = []string{"grateful", "thankful", "appreciate", "blessed", "gratitude", "thanks"}
	happinessWords   = []string{"happy", "joy", "excited", "great", "wonderful", "good", "positive", "amazing"}
	questionPrefixes = []string{"what", "how", "why", "when", "where", "can you", "do you", "should i"}
)

const (
	gratitudeReply = "It's beautiful that you're feeling grateful! Gratitude is one of the best ways to boost wellbeing. Try writing down 3 specific things you're thankful for today. What are you most grateful for in this moment?"
	happinessReply = "I'm so glad you're feeling positive! What's bringing you joy right now? Sharing and savoring positive moments helps build emotional strength. Would you like suggestions to maintain or increase this good feeling?"
	helpReply      = "I want to help you specifically. Could you tell me what's bothering you or what you need support with? I can provide breathing exercises, stress management techniques, mindfulness practices, or just listen to whatever is on your mind."
	questionReply  = "I'd love to answer your question! Could you give me a bit more detail about what you're asking? I'm here to provide practical advice, exercises, or information to support your wellbeing."
	genericReply   = "I'm here to support your wellbeing journey. Whether you're dealing with stress, anxiety, sadness, or just need someone to listen, I'm here. What specific support are you looking for today - breathing exercises, coping strategies, or something else?"
)

type moodReply struct {
	moods []string
	reply string
}

var moodReplies = []moodReply{
	{[]string{"sad", "depressed", "low"}, "I see you're tracking sadness today - that's an important step in self-awareness. Try this self-compassion practice: Place your hand on your heart and say 'This is a difficult moment, and I'm here with myself.' What would help you feel a little more supported right now?"},
	{[]string{"anxious", "worried", "nervous"}, "Your anxiety tracking shows you're paying attention to your feelings. Try this quick grounding: Name 5 things you see around you, 4 you can touch, 3 you can hear. This helps bring you back to the present. What usually helps when anxiety builds?"},
	{[]string{"stressed", "overwhelmed", "tense"}, "Stress tracking is valuable awareness. Try this 1-minute reset: Close your eyes, take 3 deep breaths, and drop your shoulders. What's one small thing you could let go of to feel less stressed?"},
	{[]string{"lonely", "isolated"}, "Tracking loneliness takes courage. Consider reaching out to someone today - even a simple 'hello' can help. Or try a loving-kindness meditation: Send kind thoughts to yourself first, then others. What kind of connection would feel good right now?"},
	{[]string{"tired", "exhausted", "fatigued"}, "Fatigue tracking helps you prioritize rest. Try a 2-minute body scan: Notice where you hold tension and consciously relax those areas. What would help you feel more energized - rest, movement, or nutrition?"},
	{[]string{"happy", "content", "good"}, "It's wonderful you're tracking positive feelings! What's contributing to this good mood? Noticing what works helps you cultivate more of it. Would you like ways to build on this positivity?"},
	{[]string{"angry", "frustrated"}, "Anger tracking is important self-awareness. Try channeling that energy into something constructive like exercise or creative expression. What triggered these feelings, and how would you like to process them?"},
}

// Generate returns the fallback reply for text given today's mood, which
// may be empty.
func Generate(text, mood string) string {
	return Classify(text, mood).Content
}

// Classify applies the fallback rules in order: emotions (each checked
// with and without a help request), gratitude, happiness, help requests,
// questions, the tracked mood, then a generic offer of support.
func Classify(text, mood string) Response {
	t := strings.ToLower(text)
	seekingHelp := containsAny(t, helpPhrases)

	for _, e := range emotions {
		if !containsAny(t, e.keywords) {
			continue
		}
		if seekingHelp {
			return Response{Content: e.withHelp, Reason: e.reason}
		}
		return Response{Content: e.alone, Reason: e.reason}
	}

	switch {
	case containsAny(t, gratitudeWords):
		return Response{Content: gratitudeReply, Reason: ReasonGratitude}
	case containsAny(t, happinessWords):
		return Response{Content: happinessReply, Reason: ReasonHappiness}
	case seekingHelp:
		return Response{Content: helpReply, Reason: ReasonHelp}
	case isQuestion(text, t):
		return Response{Content: questionReply, Reason: ReasonQuestion}
	case mood != "":
		return Response{Content: moodResponse(strings.ToLower(mood)), Reason: ReasonMood}
	}
	return Response{Content: genericReply, Reason: ReasonGeneric}
}

func moodResponse(mood string) string {
	for _, mr := range moodReplies {
		for _, m := range mr.moods {
			if m == mood {
				return mr.reply
			}
		}
	}
	return "Thanks for tracking your mood as " + mood + ". Self-awareness is a powerful tool for wellbeing. What would be most helpful for you right now - an exercise, advice, or just to talk?"
}

// isQuestion checks the raw text for a trailing '?' and the lowered text
// for a question opener.
func isQuestion(raw, lowered string) bool {
	if strings.HasSuffix(raw, "?") {
		return true
	}
	for _, p := range questionPrefixes {
		if strings.HasPrefix(lowered, p) {
			return true
		}
	}
	return false
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}
