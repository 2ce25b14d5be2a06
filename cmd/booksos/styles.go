package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ItsTraderbaby/books-os/internal/model"
)

var (
	// Shelf accent: warm amber
	accentAmber = lipgloss.Color("#D4AF37")
	// Success green
	successGreen = lipgloss.Color("#00C853")
	// Warning yellow
	warningYellow = lipgloss.Color("#FFC107")
	// Error red
	errorRed = lipgloss.Color("#F44336")
	// Info blue
	infoBlue = lipgloss.Color("#2196F3")
	// Muted gray
	mutedGray = lipgloss.Color("#9E9E9E")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(accentAmber).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(successGreen).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(warningYellow).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorRed).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedGray)

	categoryStyle = lipgloss.NewStyle().
			Foreground(infoBlue)

	starStyle = lipgloss.NewStyle().
			Foreground(warningYellow)
)

// printBook renders one catalog entry:
//
//	Title [CATEGORY] ★ 42  author · Language
//	  description
func printBook(b model.Book) {
	line := titleStyle.Render(b.Title) + " " + categoryStyle.Render("["+string(b.Category)+"]")
	if b.Meta.Stars > 0 {
		line += " " + starStyle.Render(fmt.Sprintf("★ %d", b.Meta.Stars))
	}

	var details []string
	if b.Author != "" {
		details = append(details, b.Author)
	}
	if b.Meta.Language != "" {
		details = append(details, b.Meta.Language)
	}
	if len(details) > 0 {
		line += "  " + mutedStyle.Render(strings.Join(details, " · "))
	}

	fmt.Println(line)
	if b.Description != "" {
		fmt.Println(mutedStyle.Render("  " + b.Description))
	}
}

// printTitle prints a styled section title
func printTitle(text string) {
	fmt.Println(titleStyle.Render(text))
	fmt.Println()
}

// printSuccess prints a success message
func printSuccess(text string) {
	fmt.Println(successStyle.Render("✓ " + text))
}

// printWarning prints a warning message
func printWarning(text string) {
	fmt.Println(warningStyle.Render("⚠️  " + text))
}

// printError prints an error message
func printError(text string) {
	fmt.Println(errorStyle.Render("❌ " + text))
}

// printMuted prints muted text
func printMuted(text string) {
	fmt.Println(mutedStyle.Render(text))
}

// printBullet prints a bullet point
func printBullet(text string) {
	fmt.Println("• " + text)
}
