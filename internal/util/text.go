// Package util provides shared text helpers used across the application.
package util

import "strings"

// WrapText wraps text to fit within the specified width, breaking at word
// boundaries. Words longer than width are split. Runs of whitespace collapse
// to a single space.
func WrapText(text string, width int) []string {
	if width <= 0 || len(text) <= width {
		return []string{text}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	var lines []string
	currentLine := ""
	for _, word := range words {
		// If the word itself is longer than width, break it.
		if len(word) > width {
			if currentLine != "" {
				// Fill the current line before splitting, as a paragraph filler would.
				if room := width - len(currentLine) - 1; room > 0 {
					currentLine += " " + word[:room]
					word = word[room:]
				}
				lines = append(lines, currentLine)
				currentLine = ""
			}
			for len(word) > width {
				lines = append(lines, word[:width])
				word = word[width:]
			}
			currentLine = word
			continue
		}

		testLine := currentLine
		if testLine != "" {
			testLine += " "
		}
		testLine += word

		if len(testLine) <= width {
			currentLine = testLine
		} else {
			if currentLine != "" {
				lines = append(lines, currentLine)
			}
			currentLine = word
		}
	}

	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return lines
}

// FillText wraps text at width and joins the lines with newlines.
func FillText(text string, width int) string {
	return strings.Join(WrapText(text, width), "\n")
}
