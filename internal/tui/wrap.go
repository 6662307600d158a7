// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/mkurev/typedrill/internal/engine"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

func buildStyledRunes(chars []engine.Char, cursor int) []styledRune {
	words := findWords(chars)
	currentWord := wordForCursor(words, cursor)

	out := make([]styledRune, 0, len(chars))
	for i, c := range chars {
		displayed := c.R
		style := pendingStyle
		switch c.Status {
		case engine.StatusCorrect:
			style = correctStyle
		case engine.StatusIncorrect:
			style = incorrectStyle
			if c.R == ' ' {
				displayed = '•'
			}
		default:
			if c.R != ' ' && currentWord != nil && i >= currentWord.start && i < currentWord.end {
				style = currentWordStyle
			}
		}
		if i == cursor {
			style = style.Underline(true)
		}
		out = append(out, styledRune{
			s:       style.Render(string(displayed)),
			width:   runewidth.RuneWidth(displayed),
			isSpace: c.R == ' ',
		})
	}
	return out
}

type wordRange struct {
	start int
	end   int
}

func findWords(chars []engine.Char) []wordRange {
	words := []wordRange{}
	start := -1
	for i, c := range chars {
		if c.R == ' ' {
			if start != -1 {
				words = append(words, wordRange{start: start, end: i})
				start = -1
			}
			continue
		}
		if start == -1 {
			start = i
		}
	}
	if start != -1 {
		words = append(words, wordRange{start: start, end: len(chars)})
	}
	return words
}

func wordForCursor(words []wordRange, cursor int) *wordRange {
	if len(words) == 0 {
		return nil
	}
	if cursor < 0 {
		return &words[0]
	}
	wordIdx := -1
	for i, w := range words {
		if cursor >= w.start && cursor < w.end {
			wordIdx = i
			break
		}
		if cursor < w.start {
			wordIdx = i
			break
		}
	}
	if wordIdx == -1 {
		return &words[len(words)-1]
	}
	return &words[wordIdx]
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
