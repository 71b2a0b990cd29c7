package services

import (
	"testing"
)

func TestExtractCodeBlocks_WithLanguage(t *testing.T) {
	markdown := "Here is an example:\n```go\nfmt.Println(\"hi\")\n```\nDone."

	blocks := ExtractCodeBlocks(markdown)

	if len(blocks) != 1 {
		t.Fatalf("Expected 1 code block, got %d", len(blocks))
	}
	if blocks[0] != "fmt.Println(\"hi\")" {
		t.Errorf("Unexpected block content: %q", blocks[0])
	}
}

func TestExtractCodeBlocks_Multiple(t *testing.T) {
	markdown := "```\nfirst\n```\ntext\n```python\nsecond\n```"

	blocks := ExtractCodeBlocks(markdown)

	if len(blocks) != 2 {
		t.Fatalf("Expected 2 code blocks, got %d", len(blocks))
	}
	if blocks[0] != "first" || blocks[1] != "second" {
		t.Errorf("Unexpected blocks: %v", blocks)
	}
}

func TestExtractCodeBlocks_None(t *testing.T) {
	if blocks := ExtractCodeBlocks("plain prose, no code"); len(blocks) != 0 {
		t.Errorf("Expected no blocks, got %v", blocks)
	}
}
