// Package analytics counts words in page text and suggests keyphrases for
// pages that do not declare one.
package analytics

import (
	"cmp"
	"slices"
	"strings"
	"unicode"
)

// stopwords are ignored when counting. The last line is web UI noise.
var stopwords = toSet(`
	a about above across after afterwards again against all almost alone along already also
	although always am among amongst an and another any anyhow anyone anything anyway anywhere
	are around as at back be became because become becomes becoming been before behind being
	below beside besides between beyond both but by can cannot could did do does doing done
	down during each either else elsewhere enough especially etc even ever every everyone
	everything everywhere few for former formerly from further had has have having he hence
	her here hers herself him himself his how however i if in indeed into is it its itself
	just keep last latter least less let like likely made make many may maybe me meanwhile
	might mine more moreover most mostly much must my myself neither never nevertheless next
	no nobody none noone nor not nothing now nowhere of off often on once one only onto or
	other others otherwise our ours ourselves out over own per perhaps please rather same
	see seem seemed seeming seems several she should since so some somehow someone something
	sometime sometimes somewhere still such than that the their theirs them themselves then
	there thereafter thereby therefore these they this those though through throughout thus
	to together too toward towards under until up upon us very via was we well were what
	whatever when whence whenever where whereas wherever whether which while who whoever
	whole whom whose why will with within without would yet you your yours yourself yourselves
	click button link menu redirect page pages website site home homepage search loading load
`)

func toSet(words string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(words) {
		set[w] = struct{}{}
	}
	return set
}

// IsStopword reports whether word is ignored when counting.
func IsStopword(word string) bool {
	_, ok := stopwords[strings.ToLower(word)]
	return ok
}

// WordFrequency counts the non-stopword words of text, lowercased with
// surrounding punctuation trimmed.
func WordFrequency(text string) map[string]int {
	frequencies := make(map[string]int)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if word == "" || len([]rune(word)) < 3 || IsStopword(word) {
			continue
		}
		frequencies[word]++
	}
	return frequencies
}

// Reduce sums several frequency maps.
func Reduce(counts []map[string]int) map[string]int {
	total := make(map[string]int)
	for _, c := range counts {
		for word, n := range c {
			total[word] += n
		}
	}
	return total
}

// Keyword is a word and how often it occurred.
type Keyword struct {
	Word  string `yaml:"word"`
	Count int    `yaml:"count"`
}

// TopKeywords returns up to n words by descending count. Ties are broken
// alphabetically so the result is stable.
func TopKeywords(counts map[string]int, n int) []Keyword {
	keywords := make([]Keyword, 0, len(counts))
	for w, c := range counts {
		keywords = append(keywords, Keyword{Word: w, Count: c})
	}
	slices.SortFunc(keywords, func(a, b Keyword) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.Word, b.Word)
	})
	return keywords[:min(max(n, 0), len(keywords))]
}

// SuggestKeyphrase picks the most frequent word of the title and body,
// weighting title words three times. Empty when nothing qualifies.
func SuggestKeyphrase(title, body string) string {
	titleCounts := WordFrequency(title)
	for w := range titleCounts {
		titleCounts[w] *= 3
	}
	top := TopKeywords(Reduce([]map[string]int{titleCounts, WordFrequency(body)}), 1)
	if len(top) == 0 {
		return ""
	}
	return top[0].Word
}
