// Package symmetry decides whether a title reads the same forwards and
// backwards once spaces are dropped and letter case is folded.
package symmetry

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Result holds the outcome of a single symmetry check
type Result struct {
	Title       string
	Normalized  string
	Symmetrical bool
}

// Normalize removes every space character and lowercases what is left.
// Only U+0020 is removed; tabs, digits and punctuation are kept as-is.
// Lowercasing follows the full Unicode rules, so a word-final capital sigma
// becomes "ς" and "İ" becomes "i" plus a combining dot.
func Normalize(title string) string {
	return cases.Lower(language.Und).String(strings.ReplaceAll(title, " ", ""))
}

// IsSymmetrical reports whether the normalized title is a palindrome.
func IsSymmetrical(title string) bool {
	return isPalindrome(Normalize(title))
}

// Check normalizes title and reports the verdict along with the normalized form.
func Check(title string) Result {
	normalized := Normalize(title)
	return Result{
		Title:       title,
		Normalized:  normalized,
		Symmetrical: isPalindrome(normalized),
	}
}

// isPalindrome compares runes from both ends, working towards the middle.
func isPalindrome(s string) bool {
	runes := []rune(s)

	for left, right := 0, len(runes)-1; left < right; left, right = left+1, right-1 {
		if runes[left] != runes[right] {
			return false
		}
	}

	return true
}
