package feedback

import "strings"

// ANSI backgrounds for terminal display.
const (
	reset    = "\033[0m"
	grayBg   = "\033[48;5;236m\033[38;5;255m"
	yellowBg = "\033[43m\033[30m"
	greenBg  = "\033[42m\033[30m"
)

// ColoredWord renders the word with colored backgrounds matching the
// pattern, for shell display. If the lengths disagree the word is returned
// unchanged.
func (p Pattern) ColoredWord(word string) string {
	if len(word) != len(p) {
		return word
	}
	var sb strings.Builder
	for i := 0; i < len(word); i++ {
		switch p[i] {
		case Exact:
			sb.WriteString(greenBg)
		case Present:
			sb.WriteString(yellowBg)
		default:
			sb.WriteString(grayBg)
		}
		sb.WriteByte(word[i])
		sb.WriteString(" ")
		sb.WriteString(reset)
	}
	return sb.String()
}
