// Package usage checks whether a sentence makes use of a practice word.
package usage

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Token represents a single analyzed unit of text.
type Token struct {
	Surface  string // The text as it appears (e.g. "行っ")
	BaseForm string // The dictionary form (e.g. "行く")
	Reading  string // The pronunciation (katakana, e.g. "イッ")
	// PrimaryPOS stores the first (primary) part of speech if available.
	PrimaryPOS string
}

// Analyzer handles text segmentation.
type Analyzer struct {
	t *tokenizer.Tokenizer
}

// NewAnalyzer creates a new tokenizer instance.
func NewAnalyzer() (*Analyzer, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &Analyzer{t: t}, nil
}

// Analyze breaks text into tokens with readings and base forms.
func (a *Analyzer) Analyze(text string) []Token {
	tokens := a.t.Tokenize(text)
	var result []Token

	for _, token := range tokens {
		if token.Class == tokenizer.DUMMY {
			continue
		}
		if strings.TrimSpace(token.Surface) == "" {
			continue
		}

		// IPA features: 0 POS, 6 base form, 7 reading.
		features := token.Features()

		base := token.Surface
		if len(features) > 6 && features[6] != "*" {
			base = features[6]
		}
		reading := ""
		if len(features) > 7 && features[7] != "*" {
			reading = features[7]
		}
		primaryPOS := ""
		if len(features) > 0 {
			primaryPOS = features[0]
		}

		result = append(result, Token{
			Surface:    token.Surface,
			BaseForm:   base,
			Reading:    reading,
			PrimaryPOS: primaryPOS,
		})
	}
	return result
}

var asciiRegex = regexp.MustCompile(`^[a-zA-Z0-9\s[:punct:]]*$`)

// UsesWord reports whether sentence contains word. ASCII text is compared
// word by word, ignoring case; other text is compared on dictionary forms so
// conjugated verbs and adjectives still match.
func (a *Analyzer) UsesWord(sentence, word string) bool {
	word = strings.TrimSpace(word)
	if word == "" || strings.TrimSpace(sentence) == "" {
		return false
	}
	if asciiRegex.MatchString(sentence) && asciiRegex.MatchString(word) {
		return containsRun(asciiWords(sentence), asciiWords(word))
	}
	return containsRun(a.baseForms(sentence), a.baseForms(word))
}

func (a *Analyzer) baseForms(text string) []string {
	var out []string
	for _, tok := range a.Analyze(text) {
		if tok.PrimaryPOS == "記号" {
			continue
		}
		out = append(out, strings.ToLower(tok.BaseForm))
	}
	return out
}

func asciiWords(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for i, f := range fields {
		fields[i] = strings.ToLower(f)
	}
	return fields
}

// containsRun reports whether needle appears contiguously in haystack.
func containsRun(haystack, needle []string) bool {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return false
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
