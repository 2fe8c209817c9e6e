// Package mnemonic renders shares as word phrases for human transcription.
//
// Each byte of a share maps to one word from the first 256 entries of the
// BIP39 English word list (8 bits per word). The first two words carry the
// threshold and the x-coordinate, the rest the y-sequence. Word phrases
// survive handwriting and dictation far better than hex, and decode-side
// typo detection can point at the exact word that went wrong.
package mnemonic

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/tyler-smith/go-bip39"

	"github.com/fractis/fractis/internal/shamir"
)

const (
	// wordSpace is the number of usable words: one per byte value.
	wordSpace = 256

	// MaxTypoDistance is the maximum Levenshtein distance at which a
	// suggestion is still offered for a misspelled word.
	MaxTypoDistance = 2

	// headerWords is the number of leading words (threshold, x-coordinate)
	// before the y-sequence.
	headerWords = 2
)

var (
	// ErrEmptyPhrase is returned when the phrase has no words.
	ErrEmptyPhrase = errors.New("empty share phrase")

	// ErrPhraseTooShort is returned when the phrase is missing the header
	// or carries no y-sequence words.
	ErrPhraseTooShort = errors.New("share phrase too short")

	// ErrInvalidWord is returned when a word is not in the usable word set.
	ErrInvalidWord = errors.New("invalid share word")

	// whitespaceRegex collapses runs of whitespace during normalization.
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// EncodeShare renders a share and its threshold as a word phrase.
func EncodeShare(s shamir.Share, k int) (string, error) {
	if s.X == 0 {
		return "", shamir.ErrInvalidShareIndex
	}
	if len(s.Y) == 0 {
		return "", shamir.ErrShareTooShort
	}
	if k < 1 || k > 255 {
		return "", shamir.ErrInvalidThreshold
	}

	wordList := bip39.GetWordList()
	words := make([]string, 0, headerWords+len(s.Y))
	words = append(words, wordList[k], wordList[s.X])
	for _, b := range s.Y {
		words = append(words, wordList[b])
	}
	return strings.Join(words, " "), nil
}

// DecodeShare parses a word phrase back into a share and its threshold.
// Unknown words fail with a suggestion for the closest valid word when one
// is near enough.
func DecodeShare(phrase string) (shamir.Share, int, error) {
	normalized := Normalize(phrase)
	if normalized == "" {
		return shamir.Share{}, 0, ErrEmptyPhrase
	}

	words := strings.Fields(normalized)
	if len(words) < headerWords+1 {
		return shamir.Share{}, 0, fmt.Errorf("%w: %d words", ErrPhraseTooShort, len(words))
	}

	values := make([]byte, len(words))
	for i, word := range words {
		v, err := wordValue(word)
		if err != nil {
			return shamir.Share{}, 0, fmt.Errorf("word %d: %w", i+1, err)
		}
		values[i] = v
	}

	k := int(values[0])
	if k < 1 {
		return shamir.Share{}, 0, shamir.ErrInvalidShareThreshold
	}
	if values[1] == 0 {
		return shamir.Share{}, 0, shamir.ErrInvalidShareIndex
	}

	return shamir.Share{X: values[1], Y: values[headerWords:]}, k, nil
}

// wordValue resolves a word to its byte value, attaching a typo suggestion
// to the error for words outside the usable set.
func wordValue(word string) (byte, error) {
	idx, ok := bip39.GetWordIndex(word)
	if ok && idx < wordSpace {
		return byte(idx), nil
	}

	if suggestion := SuggestWord(word); suggestion != "" && suggestion != word {
		return 0, fmt.Errorf("%w: %q (did you mean %q?)", ErrInvalidWord, word, suggestion)
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWord, word)
}

// SuggestWord finds the closest usable word to the input by Levenshtein
// distance. Returns empty when nothing is within MaxTypoDistance.
func SuggestWord(input string) string {
	input = strings.ToLower(input)
	wordList := bip39.GetWordList()

	minDist := math.MaxInt
	var suggestion string

	for _, word := range wordList[:wordSpace] {
		dist := levenshtein.ComputeDistance(input, word)
		if dist < minDist {
			minDist = dist
			suggestion = word
		}
		if dist == 0 {
			return word
		}
	}

	if minDist <= MaxTypoDistance {
		return suggestion
	}
	return ""
}

// TypoInfo describes one unrecognized word in a phrase.
type TypoInfo struct {
	// Index is the zero-based word position.
	Index int
	// Word is the original (possibly misspelled) word.
	Word string
	// Suggestion is the closest usable word, or empty if none is close.
	Suggestion string
	// Distance is the Levenshtein distance to the suggestion.
	Distance int
}

// DetectTypos scans a phrase and reports every word outside the usable set,
// with corrections where one is plausible.
func DetectTypos(phrase string) []TypoInfo {
	normalized := Normalize(phrase)
	if normalized == "" {
		return nil
	}

	var typos []TypoInfo
	for i, word := range strings.Fields(normalized) {
		if idx, ok := bip39.GetWordIndex(word); ok && idx < wordSpace {
			continue
		}
		suggestion := SuggestWord(word)
		distance := 0
		if suggestion != "" {
			distance = levenshtein.ComputeDistance(word, suggestion)
		}
		typos = append(typos, TypoInfo{
			Index:      i,
			Word:       word,
			Suggestion: suggestion,
			Distance:   distance,
		})
	}
	return typos
}

// FormatTypoSuggestions renders typo information for display.
func FormatTypoSuggestions(typos []TypoInfo) string {
	if len(typos) == 0 {
		return ""
	}

	var b strings.Builder
	for i, typo := range typos {
		if i > 0 {
			b.WriteByte('\n')
		}
		// One-indexed for humans.
		fmt.Fprintf(&b, "Word %d: '%s'", typo.Index+1, typo.Word)
		if typo.Suggestion != "" {
			fmt.Fprintf(&b, " - did you mean '%s'?", typo.Suggestion)
		} else {
			b.WriteString(" is not a valid share word")
		}
	}
	return b.String()
}

// Normalize lowercases a phrase and collapses whitespace so transcribed
// input with odd spacing still parses.
func Normalize(phrase string) string {
	normalized := strings.ToLower(strings.TrimSpace(phrase))
	return whitespaceRegex.ReplaceAllString(normalized, " ")
}
