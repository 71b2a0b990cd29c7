package services

import (
	"regexp"
	"strings"
)

// Matches fenced code blocks, with or without a language specifier.
var codeBlockRe = regexp.MustCompile("(?s)```(?:\\w*\\n|\\n)(.*?)```")

// ExtractCodeBlocks pulls the contents of every fenced code block out of a
// markdown answer, for handing to the clipboard.
func ExtractCodeBlocks(markdown string) []string {
	matches := codeBlockRe.FindAllStringSubmatch(markdown, -1)

	var codeBlocks []string
	for _, match := range matches {
		if len(match) >= 2 {
			codeBlocks = append(codeBlocks, strings.TrimSpace(match[1]))
		}
	}

	return codeBlocks
}
