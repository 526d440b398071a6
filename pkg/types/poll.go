// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package types

type PollOutcome uint8

const (
	PollOutcomeFound PollOutcome = iota // found
	PollOutcomeEmpty                    // empty
	PollOutcomeFatal                    // fatal
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=PollOutcome -linecomment

// PollResult is what a single polling iteration observed.
// Path is set for PollOutcomeFound.
// Err is set for PollOutcomeFatal,
// and may be set for PollOutcomeEmpty when a transient error was absorbed.
type PollResult struct {
	Outcome PollOutcome
	Path    string
	Err     error
}

func Found(path string) PollResult {
	return PollResult{Outcome: PollOutcomeFound, Path: path}
}

func Empty(err error) PollResult {
	return PollResult{Outcome: PollOutcomeEmpty, Err: err}
}

func Fatal(err error) PollResult {
	if err == nil {
		panic("this should never happened.")
	}
	return PollResult{Outcome: PollOutcomeFatal, Err: err}
}
