package tracker

// Color pairs a palette entry's hex value with its closest ANSI-256 code.
// The hex value is the stable identity; the ANSI code is what the terminal
// renderer actually emits.
type Color struct {
	Hex  string
	ANSI int
}

// palette is the fixed ordered list of lane colors. Assignment cycles
// through it once more distinct tasks are seen than entries.
var palette = []Color{
	{"#FF6B6B", 203},
	{"#4ECDC4", 80},
	{"#45B7D1", 74},
	{"#FFA07A", 216},
	{"#98D8C8", 115},
	{"#F7DC6F", 222},
	{"#BB8FCE", 140},
	{"#85C1E2", 110},
	{"#F8B739", 214},
	{"#52B788", 71},
	{"#E76F51", 167},
	{"#2A9D8F", 36},
	{"#E9C46A", 179},
	{"#F4A261", 215},
	{"#8338EC", 99},
	{"#3A86FF", 69},
	{"#FB5607", 202},
	{"#FF006E", 197},
	{"#8AC926", 112},
	{"#FFBE0B", 220},
}

// Palette returns a copy of the fixed color palette.
func Palette() []Color {
	out := make([]Color, len(palette))
	copy(out, palette)
	return out
}
