package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors. The night palette colors tile categories.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightYellow
	ColorBrightWhite
	ColorGray
	ColorDimGray

	ColorRose     // moon
	ColorSky      // star
	ColorMint     // cloud
	ColorLavender // lamb
	ColorPeach    // bell
	ColorGold     // candle
)
