// Package textprep cleans raw Urdu story text and injects the structural
// boundary markers the tokenizer and language model rely on. It sits in
// front of tokenizer training: raw scraped text goes in, normalized text
// with sentence/paragraph/story markers comes out.
package textprep

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Urdu script blocks. Characters outside these ranges (and the punctuation
// kept below) are stripped during cleanup.
var urduRanges = [][2]rune{
	{0x0600, 0x06FF}, // Arabic/Urdu main block
	{0x0750, 0x077F}, // Arabic Supplement
	{0xFB50, 0xFDFF}, // Arabic Presentation Forms-A
	{0xFE70, 0xFEFF}, // Arabic Presentation Forms-B
}

// keepPunct is punctuation and digits allowed to survive cleanup.
var keepPunct = map[rune]bool{}

func init() {
	for _, r := range "۔،؛؟!:;.,?-–—\"'()[]{}/\\|" {
		keepPunct[r] = true
	}
	for _, r := range "0123456789۰۱۲۳۴۵۶۷۸۹" {
		keepPunct[r] = true
	}
	for _, r := range "\n \t" {
		keepPunct[r] = true
	}
}

// IsUrduRune reports whether r belongs to one of the Urdu script blocks.
func IsUrduRune(r rune) bool {
	for _, rg := range urduRanges {
		if r >= rg[0] && r <= rg[1] {
			return true
		}
	}
	return false
}

var (
	urlRE        = regexp.MustCompile(`(?:https?://|www\.)\S+`)
	emailRE      = regexp.MustCompile(`\S+@\S+`)
	htmlTagRE    = regexp.MustCompile(`<[^>]+>`)
	englishRE    = regexp.MustCompile(`\b[a-zA-Z]+\b`)
	multiDotRE   = regexp.MustCompile(`\.{2,}`)
	multiSpaceRE = regexp.MustCompile(` +`)
)

// Normalize applies the full cleanup pipeline: NFC unicode normalization,
// noise removal (URLs, emails, leftover HTML), non-Urdu filtering,
// punctuation standardization and whitespace collapsing.
func Normalize(text string) string {
	text = norm.NFC.String(text)
	text = removeNoise(text)
	text = filterUrdu(text)
	text = standardizePunct(text)
	return collapseWhitespace(text)
}

func removeNoise(text string) string {
	text = urlRE.ReplaceAllString(text, "")
	text = emailRE.ReplaceAllString(text, "")
	text = htmlTagRE.ReplaceAllString(text, "")
	text = englishRE.ReplaceAllString(text, " ")
	return text
}

// filterUrdu keeps Urdu script, allowed punctuation and whitespace; every
// other character becomes a space so adjacent words do not fuse.
func filterUrdu(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		switch {
		case IsUrduRune(r) || keepPunct[r]:
			sb.WriteRune(r)
		default:
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

// standardizePunct maps English punctuation to the Urdu equivalents and
// collapses dot runs into the Urdu full stop.
func standardizePunct(text string) string {
	text = multiDotRE.ReplaceAllString(text, "۔")
	replacer := strings.NewReplacer(
		".", "۔",
		"?", "؟",
		";", "؛",
		",", "،",
	)
	return replacer.Replace(text)
}

// collapseWhitespace squeezes space runs, trims line edges and reduces blank
// stretches to a single paragraph break.
func collapseWhitespace(text string) string {
	text = multiSpaceRE.ReplaceAllString(text, " ")
	var paras []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			paras = append(paras, line)
		}
	}
	return strings.Join(paras, "\n\n")
}
