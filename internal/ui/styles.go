package ui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	ColorSuccess   = lipgloss.Color("#00D26A") // confirmations
	ColorWarning   = lipgloss.Color("#FFB800") // pending, warnings
	ColorError     = lipgloss.Color("#FF4444")
	ColorAddress   = lipgloss.Color("#00B4D8") // addresses, hashes
	ColorValue     = lipgloss.Color("#FFFFFF")
	ColorMeta      = lipgloss.Color("#555555")
	ColorBorder    = lipgloss.Color("#1E3A5F")
	ColorBrand     = lipgloss.Color("#9B5DE5") // Crypto Devs purple
	ColorHighlight = lipgloss.Color("#F15BB5")
	ColorButton    = lipgloss.Color("#0000FF") // the page's blue button
)

// Base styles.
var (
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StyleInfo    = lipgloss.NewStyle().Foreground(ColorAddress)
	StyleAddress = lipgloss.NewStyle().Foreground(ColorAddress)
	StyleValue   = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	StyleMeta    = lipgloss.NewStyle().Foreground(ColorMeta)
	StyleBrand   = lipgloss.NewStyle().Foreground(ColorBrand).Bold(true)

	StyleBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true).
			Underline(true)

	StyleSelected = lipgloss.NewStyle().
			Background(ColorHighlight).
			Foreground(lipgloss.Color("#000000")).
			Bold(true)

	StyleTitle = lipgloss.NewStyle().
			Foreground(ColorBrand).
			Bold(true).
			MarginBottom(1)

	StyleDim = lipgloss.NewStyle().Foreground(ColorMeta)

	StyleButton = lipgloss.NewStyle().
			Background(ColorButton).
			Foreground(ColorValue).
			Bold(true).
			Padding(0, 3)

	StyleButtonDisabled = lipgloss.NewStyle().
				Background(ColorMeta).
				Foreground(lipgloss.Color("#AAAAAA")).
				Padding(0, 3)

	StyleAlert = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorError).
			Foreground(ColorError).
			Bold(true).
			Padding(0, 2)
)

// Banner returns the Crypto Devs ASCII banner.
func Banner() string {
	art := `
   ___                  _          ___
  / __|_ _ _  _ _ __ | |_ ___   |   \ _____ __ _____
 | (__| '_| || | '_ \|  _/ _ \  | |) / -_) V /(_-<
  \___|_|  \_, | .__/ \__\___/  |___/\___|\_/ /__/
           |__/|_|`

	tagline := StyleMeta.Render("     Whitelist deployer and client")

	return StyleBrand.Render(art) + "\n" + tagline + "\n"
}

// Success formats a success message.
func Success(msg string) string { return StyleSuccess.Render("✓ " + msg) }

// Warn formats a warning message.
func Warn(msg string) string { return StyleWarning.Render("⚠ " + msg) }

// Err formats an error message.
func Err(msg string) string { return StyleError.Render("✗ " + msg) }

// Info formats an informational message.
func Info(msg string) string { return StyleInfo.Render("ℹ " + msg) }

// Hint formats a dim follow-up suggestion.
func Hint(msg string) string { return StyleMeta.Render("→ " + msg) }

// Addr formats an address.
func Addr(a string) string { return StyleAddress.Render(a) }

// Val formats a value.
func Val(v string) string { return StyleValue.Render(v) }

// Meta formats metadata text.
func Meta(m string) string { return StyleMeta.Render(m) }

// ChainName formats a chain name.
func ChainName(c string) string { return StyleBrand.Render(c) }

// TruncateAddr shortens an address for display: 0x1234…5678.
func TruncateAddr(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}
