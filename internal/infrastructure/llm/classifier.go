package llm

import (
	"context"
	"fmt"
	"strings"

	"journaldigest/internal/domain"
	"journaldigest/internal/ports"
)

// Classifier assigns a publication-type label to an abstract through a
// single completion call.
type Classifier struct {
	client *Client
}

var _ ports.Classifier = (*Classifier)(nil)

// NewClassifier wraps a completion client.
func NewClassifier(client *Client) *Classifier {
	return &Classifier{client: client}
}

// Classify asks the model for exactly one label and normalizes the answer
// against the known enumeration. Unrecognized answers come back as "Other"
// without error; call failures surface so the caller can apply its own
// fallback.
func (c *Classifier) Classify(ctx context.Context, abstract string) (domain.PubType, error) {
	raw, err := c.client.Complete(ctx, classifyPrompt(abstract))
	if err != nil {
		return domain.TypeOther, fmt.Errorf("classify: %w", err)
	}

	return domain.ParsePubType(raw), nil
}

func classifyPrompt(abstract string) string {
	var sb strings.Builder

	sb.WriteString("You are an expert in medical research classification.\n\n")
	sb.WriteString("Based on the following abstract, classify the publication type into ONE of these categories:\n")
	for _, t := range domain.PubTypes() {
		sb.WriteString("- ")
		sb.WriteString(string(t))
		sb.WriteString("\n")
	}
	sb.WriteString("\nReturn ONLY the classification as a single term with no explanation or additional text.\n\n")
	sb.WriteString("Abstract:\n")
	sb.WriteString(abstract)
	sb.WriteString("\n")

	return sb.String()
}
