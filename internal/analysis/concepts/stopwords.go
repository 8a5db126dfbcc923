package concepts

var stopwords = toSet(
	"a", "about", "above", "after", "again", "against", "all", "also", "although", "always", "am", "an",
	"and", "another", "any", "are", "around", "as", "at", "be", "because", "been", "before", "being",
	"below", "between", "both", "but", "by", "can", "cannot", "could", "did", "do", "does", "doing",
	"done", "down", "during", "each", "either", "else", "enough", "even", "ever", "every", "few", "first",
	"for", "from", "further", "get", "gets", "given", "gives", "go", "goes", "had", "has", "have",
	"having", "he", "her", "here", "hers", "him", "his", "how", "however", "i", "if", "in", "into", "is",
	"it", "its", "itself", "just", "last", "less", "let", "like", "made", "make", "makes", "many", "may",
	"me", "might", "more", "most", "much", "must", "my", "near", "need", "never", "new", "next", "no",
	"nor", "not", "now", "of", "off", "often", "on", "once", "one", "only", "or", "other", "others",
	"our", "ours", "out", "over", "own", "part", "per", "perhaps", "quite", "rather", "really", "said",
	"same", "second", "see", "seen", "several", "she", "should", "show", "shows", "simply", "since",
	"so", "some", "something", "sometimes", "still", "such", "take", "takes", "than", "that", "the",
	"their", "theirs", "them", "themselves", "then", "there", "therefore", "these", "they", "thing",
	"things", "this", "those", "though", "three", "through", "thus", "to", "together", "too", "two",
	"under", "until", "up", "upon", "us", "use", "used", "uses", "using", "very", "was", "way", "ways",
	"we", "well", "were", "what", "when", "where", "whether", "which", "while", "who", "whom", "whose",
	"why", "will", "with", "within", "without", "would", "yet", "you", "your", "yours", "yourself",
	// chapter scaffolding vocabulary
	"chapter", "section", "example", "examples", "figure", "table", "page", "summary", "review",
	"question", "questions", "answer", "answers", "introduction", "objective", "objectives",
	"exercise", "exercises", "practice", "important", "different", "following", "called", "known",
	"means", "become", "becomes", "back", "consider",
	"describe", "explain", "include", "includes", "including", "learn", "learning", "lesson",
	"look", "notice", "point", "points", "reader", "readers", "remember", "result", "results",
	"start", "step", "steps", "think", "time", "times", "understand", "understanding", "word", "words",
	"work", "works", "year", "years", "able", "level", "kind", "kinds", "type", "types",
	"case", "cases", "form", "forms", "number", "numbers",
)

func toSet(words ...string) map[string]bool {
	out := make(map[string]bool, len(words))
	for _, w := range words {
		out[w] = true
	}
	return out
}

func isStopword(w string) bool {
	return stopwords[w]
}
