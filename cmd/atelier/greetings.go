package main

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/lipgloss"
)

var doorkeeperGreetings = [...]string{
	"The workbenches are full tonight. Yours is the empty one.",
	"Three workshops started this hour. You attended none of them.",
	"The kiln is warm. The press is inked. You are outside reading this.",
	"Someone in Porto just bound their first book. What did you make today?",
	"The letterpress doesn't care about your excuses. It cares about your hands.",
	"Every maker in the studio once stood exactly where you are. Hesitating.",
	"The risograph jammed twice today and still printed more than you did.",
	"Your certificate shelf is empty. The workshops that fill it are not.",
	"The loom holds half a pattern. It's been waiting for a second pair of hands.",
	"A skill unpracticed is just a bookmark in someone else's manual.",
	"The studio smells of ink and sawdust. Your terminal smells of nothing.",
	"Seats open. Seats fill. Seats close. You keep watching the middle step.",
	"The woodcut class sold out in an hour. The waitlist moves for those who sign in.",
	"Reputation here is earned at the bench, not claimed at the door.",
	"The glaze needs a second firing. The instructor needs a second student. Both are patient. Barely.",
	"I keep the enrollment ledger. Your name is conspicuously absent.",
	"Somebody asked a question in the forum you know the answer to. Still outside?",
	"The type case is sorted. The paper is cut. The only missing tool is you.",
	"A workshop starting now has one seat left. This message is not a coincidence.",
	"The ceramics studio swept up today. They found no trace of you.",
	"Sign in, pick a bench, make a thing. The order matters less than the doing.",
	"The door is not locked. It never was. That part is on you.",
}

func printHelp() {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fbbf24")).
		Bold(true).
		Render("A T E L I E R")

	quote := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render(`"Every tool in the studio, listed once."`)

	attrib := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#D4A017")).
		Render("— The Doorkeeper")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	commands := []struct{ cmd, desc string }{
		{"atelier", "Enter the studio (interactive TUI)"},
		{"atelier login", "Sign in with GitHub"},
		{"atelier logout", "Clear your session"},
		{"atelier update", "Check for updates"},
		{"atelier guidelines", "Community Guidelines"},
		{"atelier privacy", "Privacy Policy"},
		{"atelier faq", "Frequently Asked Questions"},
		{"atelier --version", "Show version"},
		{"atelier help", "You are here"},
	}

	fmt.Printf("\n  %s\n\n  %s\n  %s\n\n  Commands:\n", title, quote, attrib)
	for _, c := range commands {
		fmt.Printf("    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", c.cmd)), descStyle.Render(c.desc))
	}
	url := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render("https://atelier.community")
	fmt.Printf("\n  %s\n\n", url)
}

func printAtelierGreeting() {
	msg := doorkeeperGreetings[rand.Intn(len(doorkeeperGreetings))]

	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fbbf24")).
		Bold(true).
		Render("ATELIER")

	quote := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render(msg)

	attrib := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#D4A017")).
		Render("— The Doorkeeper")

	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Render("To enter: atelier login")

	fmt.Printf("\n%s\n\n%s\n%s\n\n%s\n\n", title, quote, attrib, hint)
}
