package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
)

// Prompter asks the user for values. Validators return an error to make the
// user answer again.
type Prompter interface {
	Input(message, def string, validate func(string) error) (string, error)
	Password(message string, validate func(string) error) (string, error)
	Confirm(message string, def bool) (bool, error)
	Select(message string, options []string, def string) (string, error)
}

type surveyPrompter struct{}

func (surveyPrompter) Input(message, def string, validate func(string) error) (string, error) {
	var result string
	prompt := &survey.Input{Message: message, Default: def}
	if err := survey.AskOne(prompt, &result, validatorOpts(validate)...); err != nil {
		return "", err
	}
	return result, nil
}

func (surveyPrompter) Password(message string, validate func(string) error) (string, error) {
	var result string
	prompt := &survey.Password{Message: message}
	if err := survey.AskOne(prompt, &result, validatorOpts(validate)...); err != nil {
		return "", err
	}
	return result, nil
}

func (surveyPrompter) Confirm(message string, def bool) (bool, error) {
	var result bool
	prompt := &survey.Confirm{Message: message, Default: def}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

func (surveyPrompter) Select(message string, options []string, def string) (string, error) {
	var result string
	prompt := &survey.Select{Message: message, Options: options}
	if def != "" {
		prompt.Default = def
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

func validatorOpts(validate func(string) error) []survey.AskOpt {
	if validate == nil {
		return nil
	}
	return []survey.AskOpt{survey.WithValidator(func(val interface{}) error {
		str, ok := val.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", val)
		}
		return validate(str)
	})}
}

// errNoTerminal is returned when a value is needed but stdin is not a
// terminal.
var errNoTerminal = errors.New("input required but stdin is not a terminal")

// defaultsPrompter answers every prompt with its default, for pipes and CI.
type defaultsPrompter struct{}

func (defaultsPrompter) Input(message, def string, validate func(string) error) (string, error) {
	if validate != nil {
		if err := validate(def); err != nil {
			return "", fmt.Errorf("%s %w (%v)", message, errNoTerminal, err)
		}
	}
	return def, nil
}

func (defaultsPrompter) Password(message string, _ func(string) error) (string, error) {
	return "", fmt.Errorf("%s %w", message, errNoTerminal)
}

func (defaultsPrompter) Confirm(_ string, def bool) (bool, error) {
	return def, nil
}

func (defaultsPrompter) Select(message string, options []string, def string) (string, error) {
	if def != "" {
		return def, nil
	}
	if len(options) > 0 {
		return options[0], nil
	}
	return "", fmt.Errorf("%s %w", message, errNoTerminal)
}

func required(field string) func(string) error {
	return func(v string) error {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
