package scaffold

import (
	"fmt"

	"github.com/tpaseed/cli/internal/config"
	"github.com/tpaseed/cli/internal/output"
	"github.com/tpaseed/cli/internal/prompt"
)

// Questions asked during a run, in order.
const (
	GitHubUserQuestion  = "What is your GitHub username?"
	TestHarnessQuestion = "Would you like to include web-component-tester?"

	// Greeting is shown before the first question.
	Greeting = "Out of the box I include Polymer's tpa-seed-element."
)

// Answers are the user's choices for one run.
type Answers struct {
	GitHubUser         string
	IncludeTestHarness bool
}

// Presets are answers supplied before the run. Nil fields are asked for.
type Presets struct {
	GitHubUser         *string
	IncludeTestHarness *bool
}

func (p Presets) complete() bool {
	return p.GitHubUser != nil && p.IncludeTestHarness != nil
}

// collectAnswers asks the questions not covered by presets and saves the
// GitHub username to the project store.
func collectAnswers(store config.ProjectStore, p prompt.Prompter, presets Presets) (Answers, error) {
	saved, err := store.Load()
	if err != nil {
		return Answers{}, fmt.Errorf("loading project config: %w", err)
	}

	if !presets.complete() {
		if p == nil {
			return Answers{}, fmt.Errorf("no prompter available to ask for missing answers")
		}
		output.Println(output.RenderGreeting(Greeting))
	}

	var answers Answers

	if presets.GitHubUser != nil {
		answers.GitHubUser = *presets.GitHubUser
	} else {
		answers.GitHubUser, err = p.Input(GitHubUserQuestion, saved.GitHubUser)
		if err != nil {
			return Answers{}, fmt.Errorf("asking for GitHub username: %w", err)
		}
	}

	if presets.IncludeTestHarness != nil {
		answers.IncludeTestHarness = *presets.IncludeTestHarness
	} else {
		answers.IncludeTestHarness, err = p.Confirm(TestHarnessQuestion, true)
		if err != nil {
			return Answers{}, fmt.Errorf("asking about the test harness: %w", err)
		}
	}

	saved.GitHubUser = answers.GitHubUser
	if err := store.Save(saved); err != nil {
		return Answers{}, fmt.Errorf("saving project config: %w", err)
	}
	output.Debug("saved GitHub username", "ghUser", answers.GitHubUser)

	return answers, nil
}
