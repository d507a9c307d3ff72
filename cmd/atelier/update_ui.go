package main

import "fmt"

// ANSI color constants for update output (no lipgloss — runs outside TUI).
const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiItalic = "\033[3m"
	ansiAmber  = "\033[38;2;251;191;36m"  // #fbbf24
	ansiOchre  = "\033[38;2;245;158;11m"  // #f59e0b
	ansiGold   = "\033[38;2;212;160;23m"  // #d4a017
	ansiUmber  = "\033[38;2;180;83;9m"    // #b45309
	ansiSlate  = "\033[38;2;136;144;160m" // #8890a0
)

// printUpdateLogo prints the spaced ATELIER wordmark in alternating amber.
func printUpdateLogo() {
	letters := "ATELIER"
	colors := [2]string{ansiAmber, ansiOchre}
	fmt.Print("\n  ")
	for i, ch := range letters {
		fmt.Printf("%s%s%c%s", colors[i%2], ansiBold, ch, ansiReset)
		if i < len(letters)-1 {
			fmt.Print("  ")
		}
	}
	fmt.Println()
}

// printUpdateSuccess prints the update-complete message in the Doorkeeper's voice.
func printUpdateSuccess(oldVersion, newVersion string) {
	printUpdateLogo()
	fmt.Printf("\n  %s%s%s  %s%s→%s  %s%s%s%s\n",
		ansiSlate, oldVersion, ansiReset,
		ansiAmber, ansiBold, ansiReset,
		ansiAmber, ansiBold, newVersion, ansiReset,
	)
	fmt.Printf("\n  %s│%s %s%sTHE DOORKEEPER%s\n", ansiGold, ansiReset, ansiGold, ansiBold, ansiReset)
	fmt.Printf("  %s│%s %s%sFresh tools on the bench.%s\n\n", ansiGold, ansiReset, ansiUmber, ansiItalic, ansiReset)
}

// printAlreadyCurrent prints the already-up-to-date message in the Doorkeeper's voice.
func printAlreadyCurrent(currentVersion string) {
	printUpdateLogo()
	fmt.Printf("\n  %s%s%s%s  %s%s✦%s  %s%scurrent%s\n",
		ansiAmber, ansiBold, currentVersion, ansiReset,
		ansiGold, ansiBold, ansiReset,
		ansiSlate, ansiItalic, ansiReset,
	)
	fmt.Printf("\n  %s│%s %s%sTHE DOORKEEPER%s\n", ansiGold, ansiReset, ansiGold, ansiBold, ansiReset)
	fmt.Printf("  %s│%s %s%sNothing to sharpen. The bench is ready.%s\n\n", ansiGold, ansiReset, ansiUmber, ansiItalic, ansiReset)
}
