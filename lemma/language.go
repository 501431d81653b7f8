package lemma

import "strings"

// Language is one of the fixed set of languages the explorer can test
// membership in.
type Language int

const (
	// Unconstrained is selected by an empty identifier and accepts every string.
	Unconstrained Language = iota
	// AnBn is { a^n b^n : n ≥ 0 }.
	AnBn
	// AnBnCn is { a^n b^n c^n : n ≥ 0 }.
	AnBnCn
	// Palindromes is the set of strings equal to their reversal.
	Palindromes
	// Unrecognized is selected by any other identifier and accepts every string.
	Unrecognized
)

var languageIDs = map[Language]string{
	Unconstrained: "",
	AnBn:          "a^n b^n",
	AnBnCn:        "a^n b^n c^n",
	Palindromes:   "palindromes",
}

var languageDescriptions = map[Language]string{
	AnBn:        "a block of a's followed by an equally long block of b's",
	AnBnCn:      "blocks of a's, b's and c's, all of the same length",
	Palindromes: "strings that read the same forwards and backwards",
}

// ParseLanguage resolves an identifier, ignoring case and surrounding
// whitespace. It never fails: unknown identifiers map to Unrecognized.
func ParseLanguage(id string) Language {
	switch strings.ToLower(strings.TrimSpace(id)) {
	case "":
		return Unconstrained
	case languageIDs[AnBn]:
		return AnBn
	case languageIDs[AnBnCn]:
		return AnBnCn
	case languageIDs[Palindromes]:
		return Palindromes
	default:
		return Unrecognized
	}
}

// KnownLanguages returns the constrained languages in display order.
func KnownLanguages() []Language {
	return []Language{AnBn, AnBnCn, Palindromes}
}

// String returns the canonical identifier.
func (l Language) String() string {
	if l == Unrecognized {
		return "unrecognized"
	}
	return languageIDs[l]
}

// Description returns a one-line explanation of the language.
func (l Language) Description() string {
	switch l {
	case Unconstrained:
		return "no language specified; every string is accepted"
	case Unrecognized:
		return "unrecognized language; every string is accepted"
	default:
		return languageDescriptions[l]
	}
}

// Accepts reports whether candidate belongs to l.
func (l Language) Accepts(candidate string) bool {
	switch l {
	case AnBn:
		return equalBlocks(candidate, 'a', 'b')
	case AnBnCn:
		return equalBlocks(candidate, 'a', 'b', 'c')
	case Palindromes:
		return isPalindrome(candidate)
	default:
		return true
	}
}

// IsMember reports whether candidate belongs to the language named by
// languageID. Empty and unrecognized identifiers accept everything.
func IsMember(languageID, candidate string) bool {
	return ParseLanguage(languageID).Accepts(candidate)
}

// equalBlocks reports whether candidate is letters[0]^n letters[1]^n ... for
// some n ≥ 0, with nothing else in it.
func equalBlocks(candidate string, letters ...rune) bool {
	counts := make([]int, len(letters))
	block := 0
	for _, r := range candidate {
		for block < len(letters) && r != letters[block] {
			block++
		}
		if block == len(letters) {
			return false
		}
		counts[block]++
	}

	for _, c := range counts[1:] {
		if c != counts[0] {
			return false
		}
	}
	return true
}

func isPalindrome(candidate string) bool {
	runes := []rune(candidate)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		if runes[i] != runes[j] {
			return false
		}
	}
	return true
}
