package cli

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// wrapText wraps each paragraph of text to width display columns. Blank
// lines between paragraphs are kept; words wider than width are cut.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	paragraphs := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		out = append(out, wrapParagraph(p, width)...)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}

func wrapParagraph(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	line := ""
	lineWidth := 0
	for _, word := range words {
		for runewidth.StringWidth(word) > width {
			if line != "" {
				lines = append(lines, line)
				line, lineWidth = "", 0
			}
			head := runewidth.Truncate(word, width, "")
			if head == "" {
				break
			}
			lines = append(lines, head)
			word = word[len(head):]
		}
		wordWidth := runewidth.StringWidth(word)
		switch {
		case wordWidth == 0:
		case line == "":
			line, lineWidth = word, wordWidth
		case lineWidth+1+wordWidth > width:
			lines = append(lines, line)
			line, lineWidth = word, wordWidth
		default:
			line += " " + word
			lineWidth += 1 + wordWidth
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
