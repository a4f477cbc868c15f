package cli

import (
	"slices"

	"github.com/peterh/liner"
	"github.com/sahilm/fuzzy"

	"github.com/sergev/vispel/parser"
	"github.com/sergev/vispel/runtime"
)

func isWordRune(r rune) bool {
	return r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}

// candidates lists every word worth completing: keywords and the names
// currently bound in the global frame.
func candidates(sess *runtime.Session) []string {
	names := slices.Concat(parser.Keywords(), sess.Globals())
	slices.Sort(names)
	return slices.Compact(names)
}

// complete ranks candidates against word, best match first. An empty word
// completes to nothing.
func complete(word string, candidates []string) []string {
	if word == "" {
		return nil
	}
	matches := fuzzy.Find(word, candidates)
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Str
	}
	return out
}

// wordCompleter completes the identifier that ends at the cursor. liner
// reports the cursor as a rune offset.
func wordCompleter(names func() []string) liner.WordCompleter {
	return func(line string, pos int) (head string, completions []string, tail string) {
		runes := []rune(line)
		pos = min(max(pos, 0), len(runes))
		start := pos
		for start > 0 && isWordRune(runes[start-1]) {
			start--
		}
		word := string(runes[start:pos])
		return string(runes[:start]), complete(word, names()), string(runes[pos:])
	}
}
