package prompt

import "strings"

// compressionPrompt asks the model to fold a long history into a snapshot.
// Downstream parsing depends on the tag names, so they must not change.
const compressionPrompt = `You will compress a very long history into the **single authoritative** snapshot of the session state. First think privately in a <scratchpad> and pick only what is essential, then emit a <state_snapshot> (XML): dense, facts only.

<state_snapshot>
  <overall_goal>One sentence stating the user's core goal</overall_goal>
  <key_knowledge>
    <!-- Bullet list: stack, dependencies, paths, constraints, astronomical units and frames -->
  </key_knowledge>
  <file_system_state>
    <!-- Files and paths read, modified, created or deleted; what was learned -->
  </file_system_state>
  <recent_actions>
    <!-- Recent key actions and their results (facts) -->
  </recent_actions>
  <current_plan>
    <!-- Step-by-step plan marked [DONE]/[IN PROGRESS]/[TODO] -->
  </current_plan>
</state_snapshot>`

// projectSummaryPrompt asks for a Markdown summary reused by later sessions.
// The headers are parsed downstream.
const projectSummaryPrompt = `Based on the history above, write a **project summary (Markdown)** for reuse in later sessions, focused on what is needed to reproduce the work.

# Project Summary

## Overall Goal
<!-- One-sentence goal -->

## Key Knowledge
<!-- Key facts, constraints, dependencies, paths, commands, frames and units -->

## Recent Actions
<!-- Recent actions and conclusions -->

## Current Plan
<!-- Next steps with status markers: [DONE]/[IN PROGRESS]/[TODO] -->`

// CompressionPrompt returns the session-compression instruction.
func CompressionPrompt() string {
	return compressionPrompt
}

// ProjectSummaryPrompt returns the project-summary instruction.
func ProjectSummaryPrompt() string {
	return projectSummaryPrompt
}

// SubagentReminder nudges the model to delegate to the given agent types.
func SubagentReminder(agentTypes []string) string {
	return "<system-reminder>You have powerful specialized agents at your disposal, available agent types are: " +
		strings.Join(agentTypes, ", ") +
		". PROACTIVELY use the " + ToolTask +
		" tool to delegate user's task to appropriate agent when user's task matches agent capabilities. " +
		"Ignore this message if user's task is not relevant to any agent. " +
		"This message is for internal use only. Do not mention this to user in your response.</system-reminder>"
}

// PlanModeReminder tells the model to research only until the plan is approved.
func PlanModeReminder() string {
	return `<system-reminder>
Plan mode is active. The user indicated that they do not want you to execute yet -- you MUST NOT make any edits, run any non-readonly tools (including changing configs or making commits), or otherwise make any changes to the system. This supersedes any other instructions you have received (for example, to make edits). Instead, you should:
1. Answer the user's query comprehensively
2. When you're done researching, present your plan by calling the ` + ToolExitPlanMode + ` tool, which will prompt the user to confirm the plan. Do NOT make any file changes or run any tools that modify the system state in any way until the user has confirmed the plan.
</system-reminder>`
}
