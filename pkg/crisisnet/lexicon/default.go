package lexicon

// Default returns the built-in crisis-communication lexicon: cognitive,
// perceptual, and emotional process categories plus behavioral-response
// categories used for exposure/attention/comprehension breakdowns.
func Default() *Lexicon {
	l := New()

	// Cognitive processes
	l.AddCategory("cogproc", []string{
		"think", "know", "consider", "understand", "realize", "believe",
		"remember", "analyze", "decide", "conclude", "reason", "logic",
	})
	l.AddCategory("causation", []string{
		"because", "cause", "due", "since", "reason", "why", "effect",
		"result", "lead", "influence", "impact", "consequence",
	})
	l.AddCategory("certainty", []string{
		"sure", "certain", "definitely", "absolutely", "clearly", "obvious",
		"undoubtedly", "without", "doubt", "guarantee", "confirm",
	})
	l.AddCategory("differentiation", []string{
		"but", "however", "although", "whereas", "different",
		"distinguish", "contrast", "unlike", "except", "rather",
	})
	l.AddCategory("discrepancies", []string{
		"should", "would", "could", "wish", "hope", "need", "want",
		"expect", "better", "worse", "improve", "change",
	})
	l.AddCategory("insight", []string{
		"understand", "realize", "see", "recognize", "aware", "discover",
		"learn", "find", "notice", "grasp", "comprehend", "insight",
	})
	l.AddCategory("tentative", []string{
		"maybe", "perhaps", "might", "possibly", "probably", "seem",
		"appear", "guess", "suppose", "suggest", "uncertain",
	})
	l.AddCategory("comparison", []string{
		"more", "less", "than", "compare", "similar", "same", "like",
		"unlike", "equal", "versus", "between", "among",
	})

	// Perceptual processes
	l.AddCategory("percept", []string{
		"see", "hear", "feel", "touch", "taste", "smell", "look", "watch",
		"listen", "observe", "notice", "sense", "perceive",
	})
	l.AddCategory("see", []string{
		"see", "saw", "seen", "look", "watch", "observe", "notice", "view",
		"witness", "spot", "glimpse", "stare", "gaze", "glance",
	})
	l.AddCategory("hear", []string{
		"hear", "heard", "listen", "sound", "noise", "voice", "music",
		"loud", "quiet", "silent", "whisper", "shout", "scream",
	})
	l.AddCategory("feel", []string{
		"feel", "felt", "touch", "warm", "cold", "hot", "cool", "smooth",
		"rough", "soft", "hard", "pain", "hurt", "comfort",
	})

	// Emotional processes
	l.AddCategory("affect", []string{
		"happy", "sad", "angry", "fear", "joy", "love", "hate", "worry",
		"excited", "nervous", "calm", "anxious", "pleased", "upset",
	})
	l.AddCategory("posemo", []string{
		"happy", "joy", "love", "nice", "good", "great", "excellent",
		"wonderful", "amazing", "perfect", "beautiful", "smile", "laugh",
	})
	l.AddCategory("negemo", []string{
		"sad", "angry", "hate", "terrible", "awful", "bad", "worst",
		"horrible", "disgusting", "evil", "nasty", "ugly", "cry",
	})
	l.AddCategory("anx", []string{
		"worry", "fear", "nervous", "anxious", "scared", "afraid", "panic",
		"stress", "tension", "concern", "trouble", "problem", "crisis",
	})
	l.AddCategory("anger", []string{
		"angry", "mad", "hate", "furious", "rage", "irritated", "annoyed",
		"frustrated", "pissed", "damn", "fight", "argue", "attack",
	})
	l.AddCategory("sad", []string{
		"sad", "cry", "grief", "sorrow", "tears", "depressed", "miserable",
		"unhappy", "lonely", "hurt", "pain", "loss", "death",
	})
	l.AddCategory("swear", []string{
		"damn", "hell", "shit", "fuck", "ass", "bitch", "bastard",
		"crap", "piss", "suck", "wtf", "omg", "jesus",
	})

	// Behavioral responses
	l.AddCategory("risk", []string{
		"danger", "risk", "threat", "warning", "alert", "emergency", "crisis",
		"hazard", "unsafe", "careful", "caution", "avoid", "escape",
	})
	l.AddCategory("social", []string{
		"we", "us", "our", "they", "them", "their", "people", "community",
		"together", "help", "support", "share", "connect", "family",
	})
	l.AddCategory("work", []string{
		"work", "job", "office", "business", "company", "employee", "boss",
		"meeting", "project", "task", "duty", "responsibility",
	})
	l.AddCategory("leisure", []string{
		"fun", "play", "game", "sport", "entertainment", "vacation",
		"holiday", "party", "celebration", "enjoy", "relax",
	})
	l.AddCategory("home", []string{
		"home", "house", "family", "kitchen", "bedroom", "room", "apartment",
		"neighborhood", "domestic", "household", "yard", "garden",
	})
	l.AddCategory("money", []string{
		"money", "dollar", "cost", "expensive", "cheap", "buy", "sell",
		"pay", "price", "budget", "financial", "economic", "tax",
	})
	l.AddCategory("death", []string{
		"death", "die", "dead", "kill", "murder", "suicide", "grave",
		"funeral", "cemetery", "victim", "casualty", "fatality",
	})
	l.AddCategory("time", []string{
		"time", "hour", "minute", "day", "week", "month", "year", "now",
		"today", "tomorrow", "yesterday", "soon", "late", "early",
	})
	l.AddCategory("space", []string{
		"here", "there", "where", "place", "location", "area", "region",
		"city", "country", "north", "south", "east", "west", "near",
	})
	l.AddCategory("motion", []string{
		"go", "move", "come", "run", "walk", "drive", "fly", "travel",
		"leave", "arrive", "return", "follow", "chase", "escape",
	})

	return l
}
