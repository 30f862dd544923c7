package utils

import (
	"fmt"
	"strings"
)

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// ReadingTimeMinutes estimates reading time at roughly 200 words per minute,
// never reporting less than a minute for non-empty text.
func ReadingTimeMinutes(text string) int {
	words := WordCount(text)
	if words == 0 {
		return 0
	}
	minutes := (words + 199) / 200
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// FormatWordCount formats a word count for the status bar.
func FormatWordCount(words int) string {
	if words == 1 {
		return "1 word"
	}
	return fmt.Sprintf("%d words", words)
}
