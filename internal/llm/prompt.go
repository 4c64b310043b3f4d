package llm

import (
	"fmt"
	"strings"

	"github.com/kiwi13nz/AgentFlow/internal/models"
)

const promptInstruction = "Please provide a helpful response based on the above information."

// BuildPrompt renders the text sent to the vendor: the agent's system prompt,
// a "User inputs:" header, then one "label: value" line per schema-ordered
// field whose submitted value is present and non-empty. Empty fields are
// omitted entirely, not rendered as blanks.
func BuildPrompt(systemPrompt string, schema models.InputSchema, inputs map[string]interface{}) string {
	var b strings.Builder

	b.WriteString(systemPrompt)
	b.WriteString("\n\n")
	b.WriteString("User inputs:\n")

	for _, field := range schema {
		value, ok := inputs[field.Name]
		if !ok || value == nil {
			continue
		}
		rendered := fmt.Sprintf("%v", value)
		if rendered == "" {
			continue
		}
		b.WriteString(field.Label)
		b.WriteString(": ")
		b.WriteString(rendered)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(promptInstruction)

	return b.String()
}
