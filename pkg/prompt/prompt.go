/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/

// Package prompt wraps the interactive prompts used by operations. Commands
// depend on the Prompter interface so tests can script answers; the terminal
// implementation is backed by survey.
package prompt

import (
	"strings"

	"github.com/AlecAivazis/survey/v2"

	adminerrors "github.com/esadmin/esadmctl/pkg/errors"
)

// Prompter is the interactive input surface used by operations.
type Prompter interface {
	// Input asks for a free-form value. Empty input returns def.
	Input(message, def string) (string, error)

	// Required asks for a free-form value and re-prompts until non-empty.
	Required(message string) (string, error)

	// Select asks the operator to pick one of options.
	Select(message string, options []string) (string, error)

	// Confirm asks for explicit confirmation of a destructive operation.
	// Only the literal answer "y" confirms; every other answer declines.
	Confirm(message string) (bool, error)
}

// Terminal is the survey-backed Prompter.
type Terminal struct{}

func (Terminal) Input(message, def string) (string, error) {
	var out string
	err := survey.AskOne(&survey.Input{Message: message, Default: def}, &out)
	return strings.TrimSpace(out), err
}

func (Terminal) Required(message string) (string, error) {
	var out string
	err := survey.AskOne(
		&survey.Input{Message: message},
		&out,
		survey.WithValidator(survey.Required),
	)
	return strings.TrimSpace(out), err
}

func (Terminal) Select(message string, options []string) (string, error) {
	var out string
	err := survey.AskOne(&survey.Select{Message: message, Options: options}, &out)
	return out, err
}

func (Terminal) Confirm(message string) (bool, error) {
	var out string
	err := survey.AskOne(&survey.Input{Message: message + " (y/N)"}, &out)
	if err != nil {
		return false, err
	}
	return IsYes(out), nil
}

// IsYes reports whether answer is the literal confirmation "y".
// Anything else, including "yes" and "Y", declines.
func IsYes(answer string) bool {
	return strings.TrimSpace(answer) == "y"
}

// Scripted is a Prompter fed from predefined answers, for tests and for
// non-interactive invocations that preseed every prompt.
type Scripted struct {
	Answers []string
	next    int
}

func (s *Scripted) pop() (string, error) {
	if s.next >= len(s.Answers) {
		return "", adminerrors.New(adminerrors.ErrCodeInternal, "no scripted answer left")
	}
	answer := s.Answers[s.next]
	s.next++
	return answer, nil
}

func (s *Scripted) Input(_, def string) (string, error) {
	answer, err := s.pop()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

func (s *Scripted) Required(message string) (string, error) {
	answer, err := s.pop()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return "", adminerrors.New(adminerrors.ErrCodeAborted, "required input %q left empty", message)
	}
	return answer, nil
}

func (s *Scripted) Select(_ string, options []string) (string, error) {
	answer, err := s.pop()
	if err != nil {
		return "", err
	}
	for _, opt := range options {
		if opt == answer {
			return answer, nil
		}
	}
	return "", adminerrors.New(adminerrors.ErrCodeInternal, "scripted answer %q is not an option", answer)
}

func (s *Scripted) Confirm(string) (bool, error) {
	answer, err := s.pop()
	if err != nil {
		return false, err
	}
	return IsYes(answer), nil
}
