package concepts

import "sort"

// Domain lexicons map surface forms to canonical concept names. Several forms
// may point at the same canonical name; those become aliases.
var lexicons = map[string]map[string]string{
	"general": {
		"hypothesis": "hypothesis", "hypotheses": "hypothesis",
		"theory": "theory", "model": "model", "variable": "variable",
		"evidence": "evidence", "system": "system", "feedback loop": "feedback loop",
		"cause and effect": "cause and effect", "trade-off": "trade-off", "tradeoff": "trade-off",
	},
	"biology": {
		"cell": "cell", "cell membrane": "cell membrane", "plasma membrane": "cell membrane",
		"nucleus": "nucleus", "mitochondria": "mitochondrion", "mitochondrion": "mitochondrion",
		"ribosome": "ribosome", "dna": "DNA", "deoxyribonucleic acid": "DNA", "rna": "RNA",
		"gene": "gene", "protein": "protein", "enzyme": "enzyme", "photosynthesis": "photosynthesis",
		"cellular respiration": "cellular respiration", "atp": "ATP", "adenosine triphosphate": "ATP",
		"mitosis": "mitosis", "meiosis": "meiosis", "natural selection": "natural selection",
		"evolution": "evolution", "ecosystem": "ecosystem", "homeostasis": "homeostasis",
		"chloroplast": "chloroplast", "glucose": "glucose",
	},
	"computer-science": {
		"algorithm": "algorithm", "data structure": "data structure", "array": "array",
		"linked list": "linked list", "hash table": "hash table", "hash map": "hash table",
		"stack": "stack", "queue": "queue", "tree": "tree", "binary tree": "binary tree",
		"graph": "graph", "recursion": "recursion", "recursive function": "recursion",
		"big o": "big-O notation", "big-o": "big-O notation", "time complexity": "time complexity",
		"sorting": "sorting", "pointer": "pointer", "function": "function", "loop": "loop",
		"compiler": "compiler", "abstraction": "abstraction", "concurrency": "concurrency",
		"cache": "cache",
	},
	"mathematics": {
		"equation": "equation", "function": "function", "derivative": "derivative",
		"integral": "integral", "limit": "limit", "matrix": "matrix", "matrices": "matrix",
		"vector": "vector", "probability": "probability", "proof": "proof", "theorem": "theorem",
		"set": "set", "fraction": "fraction", "ratio": "ratio", "polynomial": "polynomial",
		"slope": "slope", "variance": "variance", "mean": "mean", "prime number": "prime number",
	},
	"psychology": {
		"working memory": "working memory", "long-term memory": "long-term memory",
		"short-term memory": "short-term memory", "attention": "attention",
		"motivation": "motivation", "schema": "schema", "schemas": "schema", "schemata": "schema",
		"cognitive load": "cognitive load", "retrieval practice": "retrieval practice",
		"spaced repetition": "spaced repetition", "metacognition": "metacognition",
		"conditioning": "conditioning", "reinforcement": "reinforcement", "perception": "perception",
		"emotion": "emotion", "forgetting curve": "forgetting curve", "self-efficacy": "self-efficacy",
	},
}

// Domains lists the lexicon names in a stable order.
func Domains() []string {
	out := make([]string, 0, len(lexicons))
	for k := range lexicons {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

type lexiconTerm struct {
	name     string
	forms    []string
	category string
}

// lexiconTerms returns the terms to seed for a request. The general lexicon is
// always included; crossDomain seeds every lexicon.
func lexiconTerms(domainName string, crossDomain bool) []lexiconTerm {
	selected := []string{"general"}
	if crossDomain {
		selected = Domains()
	} else if _, ok := lexicons[domainName]; ok && domainName != "general" {
		selected = append(selected, domainName)
	}

	byName := map[string]*lexiconTerm{}
	var order []string
	for _, d := range selected {
		forms := make([]string, 0, len(lexicons[d]))
		for f := range lexicons[d] {
			forms = append(forms, f)
		}
		sort.Strings(forms)
		for _, f := range forms {
			name := lexicons[d][f]
			t, ok := byName[name]
			if !ok {
				t = &lexiconTerm{name: name, category: d}
				byName[name] = t
				order = append(order, name)
			}
			t.forms = append(t.forms, f)
		}
	}
	out := make([]lexiconTerm, 0, len(order))
	for _, n := range order {
		out = append(out, *byName[n])
	}
	return out
}
