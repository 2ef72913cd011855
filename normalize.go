package relaxcg

import (
	"strconv"
	"strings"
)

// Lowercase folds s to lower case for form and lemma comparisons.
func Lowercase(s string) string {
	return strings.ToLower(s)
}

// lemmaKey, formKey and senseKey build the bracketed literals used both as
// rule heads and as set members: <lemma>, (form) and [sense].
func lemmaKey(lemma string) string { return "<" + lemma + ">" }

func formKey(form string) string { return "(" + form + ")" }

func senseKey(sense string) string { return "[" + sense + "]" }

// userKey builds the u.N=value literal for user field n.
func userKey(n int, value string) string {
	return "u." + strconv.Itoa(n) + "=" + value
}

// bracketed reports whether term contains opening and ends with closing,
// which is how the matcher tells lemma, form, sense and set terms apart.
func bracketed(term string, opening, closing byte) bool {
	return len(term) > 0 && strings.IndexByte(term, opening) >= 0 && term[len(term)-1] == closing
}

// unwrap strips the first and last byte of a bracketed literal.
func unwrap(s string) string {
	if len(s) < 2 {
		return ""
	}
	return s[1 : len(s)-1]
}
