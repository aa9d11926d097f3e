package testutil

import "fmt"

// ScriptedPrompter answers confirmation prompts from a fixed script
// instead of stdin.
type ScriptedPrompter struct {
	Answers []bool

	// Questions records every prompt asked, in order.
	Questions []string

	next int
}

// NewScriptedPrompter creates a prompter that will give the answers in
// order.
func NewScriptedPrompter(answers ...bool) *ScriptedPrompter {
	return &ScriptedPrompter{Answers: answers}
}

// Confirm pops the next scripted answer.
func (p *ScriptedPrompter) Confirm(question string) (bool, error) {
	p.Questions = append(p.Questions, question)

	if p.next >= len(p.Answers) {
		return false, fmt.Errorf("unexpected prompt %q: script exhausted after %d answers", question, len(p.Answers))
	}

	answer := p.Answers[p.next]
	p.next++
	return answer, nil
}
