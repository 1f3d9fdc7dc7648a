// Package term provides shared color state.
//
// Colors are package-level printers because multiple packages (logging,
// display) need them for output formatting. [Configure] sets the mode once
// during startup; when colors are disabled the printers emit plain text.
package term

import (
	"github.com/fatih/color"

	"github.com/backmassage/mergetweets/internal/config"
)

// Level colors shared by logging and display.
var (
	Red     = color.New(color.FgHiRed, color.Bold)
	Green   = color.New(color.FgHiGreen, color.Bold)
	Yellow  = color.New(color.FgHiYellow, color.Bold)
	Blue    = color.New(color.FgHiBlue, color.Bold)
	Cyan    = color.New(color.FgHiCyan, color.Bold)
	Magenta = color.New(color.FgHiMagenta, color.Bold)
)

// autoNoColor is fatih/color's own TTY, NO_COLOR and TERM=dumb verdict,
// captured before Configure can overwrite it.
var autoNoColor = color.NoColor

// Configure resolves the color mode and sets color.NoColor accordingly.
// Call once during startup (from [logging.NewLogger]).
func Configure(mode config.ColorMode) {
	color.NoColor = !resolve(mode)
}

func resolve(mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default: // ColorAuto
		return !autoNoColor
	}
}
