package resolver

// SynonymTable expands abbreviated or colloquial role tokens into the
// vocabulary used by canonical titles. It is a replaceable component:
// callers may supply their own table for other locales or domains.
type SynonymTable map[string][]string

// DefaultSynonyms returns the built-in English tech-role synonym table.
func DefaultSynonyms() SynonymTable {
	return SynonymTable{
		"swe":    {"software", "engineer"},
		"sde":    {"software", "engineer"},
		"dev":    {"developer"},
		"mgr":    {"manager"},
		"eng":    {"engineer"},
		"sr":     {"senior"},
		"jr":     {"junior"},
		"ml":     {"machine", "learning"},
		"ai":     {"machine", "learning"},
		"ds":     {"data", "scientist"},
		"qa":     {"quality", "tester"},
		"pm":     {"product", "manager"},
		"ux":     {"designer"},
		"ui":     {"designer"},
		"devops": {"devops", "engineer"},
		"sre":    {"reliability", "engineer"},
		"infosec": {"security"},
		"fe":     {"frontend"},
		"be":     {"backend"},
	}
}

// Expand returns the token set produced by applying the table to tokens.
// Unknown tokens pass through unchanged; expansions are appended.
func (t SynonymTable) Expand(tokens []string) []string {
	seen := make(map[string]bool, len(tokens))
	out := make([]string, 0, len(tokens))
	add := func(tok string) {
		if tok != "" && !seen[tok] {
			seen[tok] = true
			out = append(out, tok)
		}
	}

	for _, tok := range tokens {
		add(tok)
		for _, syn := range t[tok] {
			add(syn)
		}
	}
	return out
}
