// Package tui implements the Bubble Tea interface for speakbox.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Tokyo Night color palette.
var (
	colorGreen  = lipgloss.Color("#9ece6a") // green
	colorYellow = lipgloss.Color("#e0af68") // yellow
	colorBlue   = lipgloss.Color("#7aa2f7") // blue
	colorRed    = lipgloss.Color("#d75f6b") // red
	colorGray   = lipgloss.Color("#565f89") // comment
	colorWhite  = lipgloss.Color("#c0caf5") // foreground
)

// Styles used for rendering the TUI.
var (
	// Title style for the header.
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue).
			PaddingLeft(1)

	// Section label style.
	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorGray).
			PaddingLeft(1)

	// Waiting state style.
	waitingStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	// Error message style.
	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	// Result detail style.
	resultStyle = lipgloss.NewStyle().
			Foreground(colorWhite)

	// Selected (active) history entry style.
	selectedStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)

	// Active entry marker style.
	activeStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	// Normal item style (no color, uses terminal default).
	normalStyle = lipgloss.NewStyle()

	// Subtle metadata style.
	metaStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	// Help footer style.
	helpStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			PaddingLeft(1)
)

// Icons and symbols.
const (
	iconActive = "●"
	iconCursor = "❯"
	iconDot    = "•"
)
