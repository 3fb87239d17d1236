// Package prompt turns extracted code context into backend request shapes.
// No network I/O happens here.
package prompt

import (
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const systemInstruction = `You are an inline code completion engine embedded in a text editor.
You will be given the code before the cursor and the code after the cursor.
Produce only the code that should be inserted at the cursor position.

# Instructions
* Continue the code naturally from where the cursor is
* Do not repeat any code that already appears before or after the cursor
* Do not add commentary, explanations, or markdown code fences
* Your output must fit between the two given fragments`

// Input is the material a prompt is built from.
type Input struct {
	Before   string
	After    string
	Filetype string
}

// System returns the fixed system instruction.
func System() string {
	return systemInstruction
}

// User returns the user instruction embedding both context fragments. The
// fragments are fenced and labeled so the model understands the completion
// goes between them, not merely after the first.
func User(in Input) string {
	return fmt.Sprintf(`Language: %s

Previous code (everything before the cursor):
`+"```%s\n%s\n```"+`

Following code (everything after the cursor):
`+"```%s\n%s\n```"+`

Respond with only the code to insert between the two fragments.`,
		in.Filetype,
		in.Filetype, in.Before,
		in.Filetype, in.After,
	)
}

// Text returns the single concatenated prompt used by completion-style
// backends.
func Text(in Input) string {
	return System() + "\n\n" + User(in)
}

// Messages returns the system/user message pair used by chat-style backends.
func Messages(in Input) []openai.ChatCompletionMessage {
	return []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: System(),
		},
		{
			Role:    openai.ChatMessageRoleUser,
			Content: User(in),
		},
	}
}
