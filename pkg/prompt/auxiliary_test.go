package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompressionPrompt(t *testing.T) {
	prompt := CompressionPrompt()

	tags := []string{"scratchpad", "state_snapshot", "overall_goal", "key_knowledge", "file_system_state", "recent_actions", "current_plan"}
	for _, tag := range tags {
		assert.Contains(t, prompt, "<"+tag+">", "missing opening tag %s", tag)
	}
	for _, tag := range tags[1:] {
		assert.Contains(t, prompt, "</"+tag+">", "missing closing tag %s", tag)
	}
	assert.Equal(t, strings.TrimSpace(prompt), prompt)
	assert.True(t, strings.HasSuffix(prompt, "</state_snapshot>"))
}

func TestProjectSummaryPrompt(t *testing.T) {
	prompt := ProjectSummaryPrompt()

	headers := []string{"# Project Summary", "## Overall Goal", "## Key Knowledge", "## Recent Actions", "## Current Plan"}
	last := -1
	for _, h := range headers {
		idx := strings.Index(prompt, "\n"+h+"\n")
		if !assert.GreaterOrEqual(t, idx, 0, "missing header %q", h) {
			continue
		}
		assert.Greater(t, idx, last, "header %q out of order", h)
		last = idx
	}
}

func TestReminders(t *testing.T) {
	sub := SubagentReminder([]string{"python", "analysis"})
	assert.True(t, strings.HasPrefix(sub, "<system-reminder>"))
	assert.True(t, strings.HasSuffix(sub, "</system-reminder>"))
	assert.Contains(t, sub, "available agent types are: python, analysis.")
	assert.Contains(t, sub, "use the task tool")

	plan := PlanModeReminder()
	assert.Contains(t, plan, "Plan mode is active.")
	assert.Contains(t, plan, "calling the exit_plan_mode tool")
}

func TestDefaultBody(t *testing.T) {
	body := DefaultBody()
	assert.True(t, strings.HasPrefix(body, "You are **AstroCode**"))
	assert.Contains(t, body, PlaceholderIsGitRepo)
	assert.Contains(t, body, PlaceholderSandbox)
	assert.Contains(t, body, "`todo_write`")
	assert.Contains(t, body, "<example>")
	assert.Equal(t, strings.TrimSpace(body), body)
}
