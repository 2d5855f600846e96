// Package device holds the static catalog of iPhone models the
// emulator can render, plus the orientation handling for them.
package device

// NotchType identifies the hardware cutout at the top of the screen.
type NotchType string

const (
	NotchDynamicIsland NotchType = "dynamic-island"
	NotchClassic       NotchType = "notch"
	NotchNone          NotchType = "none"
)

// Insets are the per-edge margins reserved for hardware cutouts (the
// notch at the top, the home indicator at the bottom), in logical
// pixels at portrait orientation.
type Insets struct {
	Top    float64 `yaml:"top"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
	Right  float64 `yaml:"right"`
}

// Model describes one device in the catalog. Catalog models are built
// once at startup and never mutated.
type Model struct {
	ID           string    `yaml:"id"`
	Name         string    `yaml:"name"`
	Width        float64   `yaml:"width"`  // logical pixels, portrait
	Height       float64   `yaml:"height"` // logical pixels, portrait
	PixelRatio   float64   `yaml:"pixelRatio"`
	CornerRadius float64   `yaml:"cornerRadius"`
	Notch        NotchType `yaml:"notch"`
	HomeButton   bool      `yaml:"homeButton"`
	SafeArea     Insets    `yaml:"safeArea"`
}

// Orientation is the rotation of the rendered device frame.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// Toggle returns the other orientation.
func (o Orientation) Toggle() Orientation {
	if o == Landscape {
		return Portrait
	}
	return Landscape
}

// ParseOrientation maps a stored preference value back to an
// orientation, defaulting to portrait for anything unrecognized.
func ParseOrientation(s string) Orientation {
	if s == string(Landscape) {
		return Landscape
	}
	return Portrait
}

// EffectiveSize returns the model's logical screen size with the
// landscape swap already applied. The swap happens here, before any
// scale calculation, never after.
func (m Model) EffectiveSize(o Orientation) (width, height float64) {
	if o == Landscape {
		return m.Height, m.Width
	}
	return m.Width, m.Height
}

// EffectiveSafeArea returns the safe-area insets rotated to match the
// orientation: in landscape the notch edge becomes the left edge and
// the home indicator stays on the bottom.
func (m Model) EffectiveSafeArea(o Orientation) Insets {
	if o == Landscape {
		return Insets{
			Top:    m.SafeArea.Left,
			Bottom: m.SafeArea.Right,
			Left:   m.SafeArea.Top,
			Right:  m.SafeArea.Bottom,
		}
	}
	return m.SafeArea
}
