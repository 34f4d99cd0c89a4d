package textprep

import (
	"strings"

	"github.com/djeday123/storylm/tokenizer"
)

// Structural markers travel through cleaned text as Unicode private-use
// codepoints so no ordinary character can collide with them; the tokenizer
// sees them in their visible <EOS>/<EOP>/<EOT> forms.
const (
	RuneEOS = '' // end of sentence
	RuneEOP = '' // end of paragraph
	RuneEOT = '' // end of text (story)
)

// sentenceEndings are the Urdu sentence-final punctuation marks.
var sentenceEndings = []string{"۔", "؟", "!"}

// InjectMarkers adds the three structural markers to normalized text:
// an end-of-sentence codepoint after sentence-final punctuation, an
// end-of-paragraph codepoint at every paragraph break and a single
// end-of-text codepoint at the end of the story.
func InjectMarkers(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	for _, punct := range sentenceEndings {
		text = strings.ReplaceAll(text, punct, punct+string(RuneEOS))
	}

	paras := strings.Split(text, "\n\n")
	kept := paras[:0]
	for _, p := range paras {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	for i := 0; i < len(kept)-1; i++ {
		kept[i] += string(RuneEOP)
	}
	text = strings.Join(kept, "\n\n")

	text = strings.TrimSpace(text)
	if !strings.HasSuffix(text, string(RuneEOT)) {
		text += string(RuneEOT)
	}
	return text
}

// MarkVisible rewrites the private-use markers as whitespace-delimited
// visible tokens, the form the corpus splitter keeps atomic.
func MarkVisible(text string) string {
	replacer := strings.NewReplacer(
		string(RuneEOS), " "+tokenizer.EosToken+" ",
		string(RuneEOP), " "+tokenizer.EopToken+" ",
		string(RuneEOT), " "+tokenizer.EotToken+" ",
	)
	return replacer.Replace(text)
}

// Prepare runs the full front end: cleanup, marker injection and the visible
// rewrite, producing text ready for tokenizer training or encoding.
func Prepare(text string) string {
	return MarkVisible(InjectMarkers(Normalize(text)))
}
