package subjects

import (
	"fmt"
	"strings"
)

// Placeholder is the value every field carries in the format example. A
// model that copies it back has not answered.
const Placeholder = "string"

const formatInstructions = `Answer with a single JSON object and nothing else, in exactly this format:
{
    "main_subject_of_the_prompt": "string",
    "basic_subjects": [
        {"detailed_name": "string", "description": "string"},
        {"detailed_name": "string", "description": "string"}
    ],
    "deeper_subjects": [
        {"detailed_name": "string", "description": "string"},
        {"detailed_name": "string", "description": "string"}
    ]
}
Replace every "string" with real content. basic_subjects are the fundamentals a newcomer
must learn first; deeper_subjects are advanced topics to explore afterwards.`

func buildPrompt(promptText string) string {
	return fmt.Sprintf("%s\n\nThe advice is about: %s", formatInstructions, strings.TrimSpace(promptText))
}

func buildRepairPrompt(completion string, parseErr error) string {
	var b strings.Builder
	b.WriteString("Instructions:\n--------------\n")
	b.WriteString(formatInstructions)
	b.WriteString("\n--------------\nCompletion:\n--------------\n")
	b.WriteString(completion)
	b.WriteString("\n--------------\n\nThe completion above does not satisfy the instructions.\nError:\n--------------\n")
	b.WriteString(parseErr.Error())
	b.WriteString("\n--------------\n\nRewrite it so that it satisfies the instructions. Respond with the JSON object only.")
	return b.String()
}
