// Package theme holds the colour palette of the glyphpad window.
package theme

import (
	"image/color"
)

// Theme defines the colours used to draw the window chrome. The drawing
// surface itself is styled by the canvas configuration, not the theme, so
// the pixels sent for prediction never depend on it.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Behind every panel
	Foreground color.RGBA // Main text
	Muted      color.RGBA // Hints and secondary text
	Error      color.RGBA // Validation and request errors
	Border     color.RGBA

	ToolbarBackground color.RGBA
	StatusBackground  color.RGBA
	UploadBackground  color.RGBA // Upload mode input area

	// Toolbar buttons
	ButtonBackground         color.RGBA
	ButtonBackgroundHover    color.RGBA
	ButtonBackgroundPress    color.RGBA
	ButtonBackgroundSelected color.RGBA
	ButtonBackgroundDisabled color.RGBA
	ButtonText               color.RGBA
	ButtonTextSelected       color.RGBA
	ButtonTextDisabled       color.RGBA
}

// Default returns the built-in light theme.
func Default() *Theme {
	return &Theme{
		Name:                     "Default",
		Background:               color.RGBA{240, 240, 240, 255},
		Foreground:               color.RGBA{0, 0, 0, 255},
		Muted:                    color.RGBA{110, 110, 110, 255},
		Error:                    color.RGBA{180, 20, 20, 255},
		Border:                   color.RGBA{0, 0, 0, 255},
		ToolbarBackground:        color.RGBA{215, 215, 215, 255},
		StatusBackground:         color.RGBA{225, 225, 225, 255},
		UploadBackground:         color.RGBA{255, 255, 255, 255},
		ButtonBackground:         color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover:    color.RGBA{180, 180, 180, 255},
		ButtonBackgroundPress:    color.RGBA{150, 150, 150, 255},
		ButtonBackgroundSelected: color.RGBA{60, 90, 160, 255},
		ButtonBackgroundDisabled: color.RGBA{225, 225, 225, 255},
		ButtonText:               color.RGBA{0, 0, 0, 255},
		ButtonTextSelected:       color.RGBA{255, 255, 255, 255},
		ButtonTextDisabled:       color.RGBA{150, 150, 150, 255},
	}
}
