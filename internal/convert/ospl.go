// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import "strings"

// SentencePerLine rewrites prose lines so that each sentence starts on its
// own line. Code blocks, headings, list items, quotes, and block directives
// are left alone. A sentence ending inside _italic_ or *bold* text closes
// the markup and the next sentence reopens it.
func SentencePerLine(content string) string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	inCode := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "----":
			inCode = !inCode
			out = append(out, line)
		case trimmed == "", inCode, keepLine(line):
			out = append(out, line)
		default:
			out = append(out, splitSentences(line)...)
		}
	}
	return strings.Join(out, "\n")
}

func keepLine(line string) bool {
	for _, prefix := range []string{"=", "*", ".", ">", "[source", "image::", "----"} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func splitSentences(line string) []string {
	var (
		sentences []string
		current   strings.Builder
		inTicks   bool
		italic    bool
		bold      bool
	)
	runes := []rune(line)

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		current.WriteRune(r)

		switch {
		case r == '`':
			inTicks = !inTicks
		case inTicks:
		case r == '_':
			italic = !italic
		case r == '*':
			bold = !bold
		case r == '.' || r == '!' || r == '?':
			if i+1 >= len(runes) || runes[i+1] != ' ' {
				continue
			}
			sentence := strings.TrimSpace(current.String())
			if italic && !strings.HasSuffix(sentence, "_") {
				sentence += "_"
			}
			if bold && !strings.HasSuffix(sentence, "*") {
				sentence += "*"
			}
			sentences = append(sentences, sentence)

			current.Reset()
			switch {
			case bold:
				current.WriteRune('*')
			case italic:
				current.WriteRune('_')
			}
			i++ // the space after the sentence
		}
	}

	if rest := strings.TrimSpace(current.String()); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}
