package prompt

import "strings"

// MemorySeparator sits between the prompt body and the user memory.
const MemorySeparator = "\n\n---\n\n"

// Compose appends trimmed memory to body. Blank memory leaves body untouched.
func Compose(body, memory string) string {
	trimmed := strings.TrimSpace(memory)
	if trimmed == "" {
		return body
	}
	return body + MemorySeparator + trimmed
}

// CustomSystemPrompt composes a caller-provided instruction with memory,
// using the same rule as the resolved system prompt.
func CustomSystemPrompt(instruction Instruction, memory string) string {
	return Compose(InstructionText(instruction), memory)
}
