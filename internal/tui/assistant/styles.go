// ============================================================================
// VoiceDesk - Desktop Voice Assistant
// ============================================================================
//
// Package:     assistant
// Description: Styles for the assistant TUI
// License:     MIT
// ============================================================================

package assistant

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#8B5CF6") // Violet
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorAccent    = lipgloss.Color("#F59E0B") // Amber
	ColorSuccess   = lipgloss.Color("#10B981") // Emerald
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorDimmed    = lipgloss.Color("#374151") // Dark Gray

	ColorBgPanel     = lipgloss.Color("#1E293B") // Slate 800
	ColorBgUser      = lipgloss.Color("#1E3A5F")
	ColorBgAssistant = lipgloss.Color("#1E293B")

	ColorText      = lipgloss.Color("#F8FAFC") // Slate 50
	ColorTextMuted = lipgloss.Color("#94A3B8") // Slate 400
)

// Transcript styles
var (
	UserMessageStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Background(ColorBgUser).
				Padding(0, 2).
				MarginBottom(1).
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(ColorSecondary)

	AssistantMessageStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Background(ColorBgAssistant).
				Padding(0, 2).
				MarginBottom(1).
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(ColorDimmed)

	SystemMessageStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Italic(true).
				Padding(0, 2).
				MarginBottom(1)

	RoleLabelUserStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary).
				Bold(true)

	RoleLabelAssistantStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true)

	TimestampStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)

// Panel styles
var (
	TranscriptPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary).
				Padding(0, 1)

	TitlePanelStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 2).
			MarginBottom(1)
)

// Status styles
var (
	StatusBarStyle = lipgloss.NewStyle().
			Background(ColorBgPanel).
			Foreground(ColorText).
			Padding(0, 1)

	StateIdleStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Bold(true)

	StateListeningStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess).
				Bold(true)

	StateProcessingStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true)

	StateSpeakingStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary).
				Bold(true)

	StateErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)
)

// Help styles
var (
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			MarginTop(1)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	LogoStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)
)

// Logo
const Logo = "VoiceDesk"

// RenderKeyHint renders a keyboard shortcut hint
func RenderKeyHint(key, description string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(description)
}
