package main

import (
	"github.com/AlecAivazis/survey/v2"
)

// prompter asks the user questions. The book command takes one so its flow
// can be driven without a terminal.
type prompter interface {
	Select(message string, options []string, def int) (int, error)
	Input(message, def string) (string, error)
	Confirm(message string, def bool) (bool, error)
}

type surveyPrompter struct{}

func (surveyPrompter) Select(message string, options []string, def int) (int, error) {
	var idx int
	prompt := &survey.Select{
		Message: message,
		Options: options,
	}
	if def >= 0 && def < len(options) {
		prompt.Default = options[def]
	}
	err := survey.AskOne(prompt, &idx)
	return idx, err
}

func (surveyPrompter) Input(message, def string) (string, error) {
	var answer string
	prompt := &survey.Input{
		Message: message,
		Default: def,
	}
	err := survey.AskOne(prompt, &answer)
	return answer, err
}

func (surveyPrompter) Confirm(message string, def bool) (bool, error) {
	var answer bool
	prompt := &survey.Confirm{
		Message: message,
		Default: def,
	}
	err := survey.AskOne(prompt, &answer)
	return answer, err
}
