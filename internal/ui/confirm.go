package ui

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Confirm prints a styled yes/no prompt and reads the answer from stdin.
// Anything other than "y" or "yes" counts as no, including a read error.
func Confirm(prompt string) bool {
	fmt.Print(PromptStyle.Render(prompt + " [y/N]: "))

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		fmt.Println()
		return false
	}

	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
