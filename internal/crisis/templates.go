package crisis

type item struct {
	label string
	text  string
}

type section struct {
	header string
	tips   []item
}

const opening = "I'm really concerned about what you're going through, and I want you to know you're not alone. Please reach out immediately to:"

const closing = "**Remember**: These are temporary measures while you get professional help. You're taking an important step by reaching out, and help is available. You don't have to go through this alone."

var emergencyServices = []item{
	{"Police", "Call 100"},
	{"Ambulance/Medical Emergency", "Call 108 or 112"},
	{"Fire", "Call 101"},
}

var helplines = []item{
	{"AASRA (Mumbai)", "9820466726 (24/7)"},
	{"Sneha India Foundation (Chennai)", "044-24640050 (24/7)"},
	{"Vandrevala Foundation", "1860 266 2345 (24/7)"},
	{"1Life (Youth Mental Health)", "78930 78930 (24/7)"},
	{"Trusted person", "Call a friend, family member, or mental health professional"},
}

var sections = map[Category]section{
	Suicide: {
		header: "While waiting for help, here are some immediate steps that might help:",
		tips: []item{
			{"Ground yourself in the present", "Name 5 things you can see, 4 you can touch, 3 you can hear, 2 you can smell, 1 you can taste"},
			{"Remove immediate dangers", "Put away anything that could cause harm"},
			{"Connect with others", "Even a brief conversation can help - call someone you trust"},
			{"Remember this passes", "These feelings are intense but they won't last forever"},
			{"Hold on", "You matter, and help is available right now"},
		},
	},
	SelfHarm: {
		header: "While getting professional help, consider these coping strategies:",
		tips: []item{
			{"Delay the urge", "Wait 15 minutes - use a timer, do something else"},
			{"Physical alternatives", "Hold ice cubes, snap a rubber band on your wrist, take a cold shower"},
			{"Express emotions safely", "Draw, write, scream into a pillow, punch a cushion"},
			{"Distract yourself", "Call a friend, watch a favorite show, go for a walk"},
			{"Self-soothe", "Wrap yourself in a blanket, drink something warm, listen to comforting music"},
		},
	},
	SevereDepression: {
		header: "Ways to cope while working toward recovery:",
		tips: []item{
			{"Start very small", "One tiny step at a time - make your bed, brush your teeth"},
			{"Connect with others", "Even brief interactions matter - text a friend"},
			{"Move your body", "A short walk or stretching can release endorphins"},
			{"Practice self-compassion", "Treat yourself like you would a dear friend"},
			{"Seek light and nature", "Open curtains, step outside, get some sunlight"},
		},
	},
	MentalCrisis: {
		header: "Strategies to help stabilize in a crisis:",
		tips: []item{
			{"Breathe deeply", "4 counts in, hold 4, 6 counts out - repeat several times"},
			{"Ground yourself", "Use the 5-4-3-2-1 technique (senses)"},
			{"Step away", "Remove yourself from overwhelming situations if possible"},
			{"Reach out", "Talk to someone safe about what's happening"},
			{"Wait it out", "Intense feelings usually pass, even if it doesn't feel like it"},
		},
	},
	TraumaAbuse: {
		header: "Support for trauma-related crisis:",
		tips: []item{
			{"Find a safe space", "Go somewhere you feel secure"},
			{"Use grounding techniques", "Focus on your breath or physical sensations"},
			{"Reach out to support", "Contact a trauma-informed counselor or hotline"},
			{"Practice self-care", "Rest, eat, hydrate - basic needs matter"},
			{"Remember you're safe now", "The trauma is in the past"},
		},
	},
	Addiction: {
		header: "Support for addiction crisis:",
		tips: []item{
			{"Contact support immediately", "Call SAMHSA helpline at 1-800-662-HELP"},
			{"Remove triggers", "Step away from substances or situations"},
			{"Use coping skills", "Deep breathing, distraction techniques"},
			{"Reach out to sober support", "Call a sponsor or support group member"},
			{"Focus on one hour at a time", "Take it moment by moment"},
		},
	},
	General: {
		header: "Immediate coping strategies:",
		tips: []item{
			{"Breathe", "Slow, deep breaths to calm your nervous system"},
			{"Ground yourself", "Notice your surroundings and physical sensations"},
			{"Connect", "Reach out to someone you trust"},
			{"Move", "Physical activity can help process intense emotions"},
			{"Wait", "Intense feelings typically pass with time"},
		},
	},
}

const (
	emergencyHeader = "🚨 Emergency Services (India):"
	helplineHeader  = "🆘 Mental Health Crisis Helplines (India):"
)

// EmergencyBlockHeader appears in every crisis response.
const EmergencyBlockHeader = "**" + emergencyHeader + "**"
