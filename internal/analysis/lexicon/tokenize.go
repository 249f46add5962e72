package lexicon

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// abbreviations never end a sentence when followed by a period.
var abbreviations = map[string]struct{}{
	"rs": {}, "mr": {}, "mrs": {}, "ms": {}, "dr": {}, "inc": {}, "ltd": {}, "co": {},
	"corp": {}, "vs": {}, "st": {}, "jr": {}, "sr": {}, "approx": {}, "est": {}, "no": {},
}

// Tokenize lowercases text and splits it into word tokens. Letters and digits form
// tokens; hyphens and apostrophes are kept when they join two word characters and
// a period or comma is kept between two digits ("all-time", "don't", "5.2").
func Tokenize(text string) []string {
	var (
		tokens  []string
		current strings.Builder
	)
	runes := []rune(text)
	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for i, r := range runes {
		if r == '’' {
			r = '\''
		}
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			current.WriteRune(unicode.ToLower(r))
		case (r == '-' || r == '\'') && current.Len() > 0 && i+1 < len(runes) && isWordRune(runes[i+1]):
			current.WriteRune(r)
		case (r == '.' || r == ',') && i > 0 && i+1 < len(runes) && unicode.IsDigit(runes[i-1]) && unicode.IsDigit(runes[i+1]):
			current.WriteRune(r)
		default:
			flush()
		}
	}
	flush()
	return tokens
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// SplitSentences splits text into trimmed, verbatim sentences. A sentence ends at a
// run of '.', '!' or '?' followed by whitespace (or the end of text), or at a line
// break. Periods after common abbreviations and single letters do not end a sentence.
func SplitSentences(text string) []string {
	var sentences []string
	start := 0
	emit := func(end int) {
		s := strings.TrimSpace(text[start:end])
		if s != "" {
			sentences = append(sentences, s)
		}
		start = end
	}

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		switch r {
		case '\n', '\r':
			emit(i)
			i += size
			start = i
			continue
		case '.', '!', '?':
			j := i
			for j < len(text) && strings.ContainsRune(".!?", rune(text[j])) {
				j++
			}
			atBoundary := j == len(text)
			if !atBoundary {
				next, _ := utf8.DecodeRuneInString(text[j:])
				atBoundary = unicode.IsSpace(next)
			}
			if atBoundary && !(r == '.' && j == i+1 && endsWithAbbreviation(text[start:i])) {
				emit(j)
			}
			i = j
			continue
		}
		i += size
	}
	emit(len(text))
	return sentences
}

func endsWithAbbreviation(s string) bool {
	end := len(s)
	begin := end
	for begin > 0 {
		r, size := utf8.DecodeLastRuneInString(s[:begin])
		if !unicode.IsLetter(r) {
			break
		}
		begin -= size
	}
	word := strings.ToLower(s[begin:end])
	if word == "" {
		return false
	}
	if utf8.RuneCountInString(word) == 1 {
		return true
	}
	_, ok := abbreviations[word]
	return ok
}

// IsQuestion reports whether a sentence is interrogative: it ends with '?' or its
// first token is a question marker of l.
func (l *Lexicon) IsQuestion(sentence string, tokens []string) bool {
	if strings.HasSuffix(strings.TrimSpace(sentence), "?") {
		return true
	}
	return len(tokens) > 0 && l.IsQuestionMarker(tokens[0])
}
