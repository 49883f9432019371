// Package menu implements the "menu/terminal rendering library"
// external collaborator of spec.md §1: cursor/redraw bookkeeping and
// format-string driven rendering via
// github.com/charmbracelet/bubbletea and github.com/charmbracelet/lipgloss,
// plus the file-dialog and
// yes/no prompt collaborators via github.com/AlecAivazis/survey/v2.
// Grounded on the pack's XTheocharis-crush and andreweick-agepad
// manifests (bubbletea/bubbles/lipgloss) and GoogleContainerTools-
// skaffold (survey).
package menu

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/corvidmail/attachbrowser/internal/attach"
)

// Prompter implements attach.SavePrompter and attach.OverwritePrompter
// over survey-driven terminal prompts.
type Prompter struct{}

// PromptSavePath asks for a destination path, pre-filled with
// suggested.
func (Prompter) PromptSavePath(suggested string) (string, bool) {
	var path string
	q := &survey.Input{Message: "Save attachment to:", Default: suggested}
	if err := survey.AskOne(q, &path); err != nil {
		return "", true
	}
	if path == "" {
		return "", true
	}
	return path, false
}

// ResolveConflict asks overwrite/append/cancel when path already
// exists, per SaveEngine's conflict-resolver contract (spec.md §4.4).
func (Prompter) ResolveConflict(path string) attach.ConflictDecision {
	var choice string
	q := &survey.Select{
		Message: fmt.Sprintf("%s already exists. Overwrite, append, or cancel?", path),
		Options: []string{"overwrite", "append", "cancel"},
		Default: "overwrite",
	}
	if err := survey.AskOne(q, &choice); err != nil {
		return attach.ConflictCancel
	}
	switch choice {
	case "append":
		return attach.ConflictAppend
	case "cancel":
		return attach.ConflictCancel
	default:
		return attach.ConflictOverwrite
	}
}

// PromptCommand implements attach.CommandPrompter for PIPE's free-text
// command line.
func (Prompter) PromptCommand(label string) (string, bool) {
	var cmd string
	q := &survey.Input{Message: label}
	if err := survey.AskOne(q, &cmd); err != nil || cmd == "" {
		return "", false
	}
	return cmd, true
}

// Confirm implements attach.OverwritePrompter for the filter-in-place
// and print confirmations: a yes/no question defaulting to yes.
func (Prompter) Confirm(prompt string) bool {
	var ok bool
	q := &survey.Confirm{Message: prompt, Default: true}
	if err := survey.AskOne(q, &ok); err != nil {
		return false
	}
	return ok
}

// ConfirmQuad resolves a quad-option the way the original's
// query_quadoption does: yes/no answer immediately, ask-yes/ask-no
// prompt with that polarity as the default.
func ConfirmQuad(p Prompter, prompt string, q attach.QuadOption) bool {
	switch q {
	case attach.QuadYes:
		return true
	case attach.QuadNo:
		return false
	case attach.QuadAskYes:
		return askQuad(prompt, true)
	default:
		return askQuad(prompt, false)
	}
}

func askQuad(prompt string, def bool) bool {
	var ok bool
	q := &survey.Confirm{Message: prompt, Default: def}
	if err := survey.AskOne(q, &ok); err != nil {
		return false
	}
	return ok
}
