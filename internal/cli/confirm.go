// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// confirm.go - Confirmation prompts for the text flow.
//
// One pattern everywhere: prompts require a TTY on stdin, anything else
// reads as "no". Destructive transitions additionally require typing a
// confirmation phrase so a stray "y" cannot tear an installation down.

package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// PromptYesNo prompts the user with a yes/no question, defaulting to no.
// Returns false if stdin is not a TTY (cannot prompt).
func PromptYesNo(question string) bool {
	if !IsTTY() {
		return false
	}

	fmt.Printf("%s [y/N]: ", question)

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response := strings.ToLower(strings.TrimSpace(input))
	return response == "y" || response == "yes"
}

// PromptChoice prompts the user to choose from a list of options.
// Returns the index of the selected option (0-based).
// Returns -1 if cancelled, invalid input, or stdin is not a TTY.
func PromptChoice(question string, options []string) int {
	if !IsTTY() {
		return -1
	}

	fmt.Println()
	fmt.Println(question)
	fmt.Println()

	for i, option := range options {
		fmt.Printf("  %d) %s\n", i+1, option)
	}

	fmt.Println()
	fmt.Printf("Enter choice (1-%d): ", len(options))

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return -1
	}

	response := strings.TrimSpace(input)
	var choice int
	if _, err := fmt.Sscanf(response, "%d", &choice); err != nil || choice < 1 || choice > len(options) {
		return -1
	}

	return choice - 1
}

// ConfirmDangerousAction requires typing a specific phrase before a
// destructive operation proceeds (e.g. removing an installation).
//
// Returns an error when stdin is not a terminal; the caller cannot fall
// back to a default answer for destructive work.
func ConfirmDangerousAction(action, confirmPhrase string) (bool, error) {
	if !IsTTY() {
		return false, fmt.Errorf("confirmation required but stdin is not a terminal")
	}

	fmt.Println()
	fmt.Println(ErrorStyle.Render("[!!] DESTRUCTIVE ACTION [!!]"))
	fmt.Println(RenderSeparator(50))
	fmt.Println()
	fmt.Printf("You are about to: %s\n", ErrorStyle.Render(action))
	fmt.Println()
	fmt.Printf("To confirm, type '%s' (without quotes): ", confirmPhrase)

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}

	confirmed := strings.TrimSpace(input) == confirmPhrase
	if !confirmed {
		fmt.Println()
		fmt.Println(DimStyle.Render("Confirmation phrase did not match. Cancelled."))
		fmt.Println()
	}

	return confirmed, nil
}

// ShowCancellationMessage displays a standard cancellation message.
func ShowCancellationMessage() {
	fmt.Println()
	fmt.Println(DimStyle.Render("Cancelled."))
	fmt.Println()
}
