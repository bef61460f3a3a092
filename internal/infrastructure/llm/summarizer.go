package llm

import (
	"context"
	"fmt"
	"strings"

	"journaldigest/internal/domain"
	"journaldigest/internal/ports"
)

// Summarizer produces the two-section "Summary" / "Context" text for an
// article abstract.
type Summarizer struct {
	client *Client
}

var _ ports.Summarizer = (*Summarizer)(nil)

// NewSummarizer wraps a completion client.
func NewSummarizer(client *Client) *Summarizer {
	return &Summarizer{client: client}
}

// headingBlock is the inline-styled fragment that replaces the literal
// section heading words in the model output, so the digest renderer can
// embed the text directly.
const headingBlock = `<div style="font-weight: bold; color: #333; margin-top: 12px; margin-bottom: 6px;">%s<div style="width: 60px; height: 2px; background-color: #2e8b57; margin-top: 3px;"></div></div>`

// Summarize requests the two-section summary and swaps the literal
// "Summary" and "Context" heading words for styled heading blocks. The
// article's author names travel with the request for context but are not
// enforced in the prompt.
func (s *Summarizer) Summarize(ctx context.Context, article domain.Article, abstract string) (string, error) {
	content, err := s.client.Complete(ctx, summarizePrompt(abstract))
	if err != nil {
		return "", fmt.Errorf("summarize %q: %w", article.Title, err)
	}

	content = strings.ReplaceAll(content, "Summary", fmt.Sprintf(headingBlock, "Summary"))
	content = strings.ReplaceAll(content, "Context", fmt.Sprintf(headingBlock, "Context"))

	return content, nil
}

func summarizePrompt(abstract string) string {
	var sb strings.Builder

	sb.WriteString("You are an expert scientific assistant.\n\n")
	sb.WriteString("Given this abstract, generate:\n")
	sb.WriteString("1. A section that summarizes the core findings in formal academic language\n")
	sb.WriteString("2. A section that explains why the study is important and how it relates to previous spine surgery or spine research literature\n\n")
	sb.WriteString("Format your response so that:\n")
	sb.WriteString("- The first section begins with \"Summary\" (no colon)\n")
	sb.WriteString("- The second section begins with \"Context\" (no colon)\n")
	sb.WriteString("- Both headings should be in a formal style that a medical journal would use\n")
	sb.WriteString("- Use a concise, authoritative tone throughout\n\n")
	sb.WriteString("Do NOT use any asterisks or special formatting characters in your response.\n\n")
	sb.WriteString("Abstract:\n")
	sb.WriteString(abstract)
	sb.WriteString("\n")

	return sb.String()
}
