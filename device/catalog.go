package device

// DefaultID is the model used when a requested id is absent or unknown.
const DefaultID = "iphone-15-pro"

// Dimensions are logical (CSS) pixels in portrait; safe-area values
// follow Apple's published layout margins per generation.
var builtin = []Model{
	{
		ID:           "iphone-15-pro",
		Name:         "iPhone 15 Pro",
		Width:        393,
		Height:       852,
		PixelRatio:   3,
		CornerRadius: 55,
		Notch:        NotchDynamicIsland,
		SafeArea:     Insets{Top: 59, Bottom: 34},
	},
	{
		ID:           "iphone-15-pro-max",
		Name:         "iPhone 15 Pro Max",
		Width:        430,
		Height:       932,
		PixelRatio:   3,
		CornerRadius: 55,
		Notch:        NotchDynamicIsland,
		SafeArea:     Insets{Top: 59, Bottom: 34},
	},
	{
		ID:           "iphone-14",
		Name:         "iPhone 14",
		Width:        390,
		Height:       844,
		PixelRatio:   3,
		CornerRadius: 47,
		Notch:        NotchClassic,
		SafeArea:     Insets{Top: 47, Bottom: 34},
	},
	{
		ID:           "iphone-13-mini",
		Name:         "iPhone 13 mini",
		Width:        375,
		Height:       812,
		PixelRatio:   3,
		CornerRadius: 44,
		Notch:        NotchClassic,
		SafeArea:     Insets{Top: 50, Bottom: 34},
	},
	{
		ID:           "iphone-se",
		Name:         "iPhone SE (3rd gen)",
		Width:        375,
		Height:       667,
		PixelRatio:   2,
		CornerRadius: 0,
		Notch:        NotchNone,
		HomeButton:   true,
		SafeArea:     Insets{Top: 20},
	},
}

// Catalog is an immutable, process-wide lookup of device models.
type Catalog struct {
	models []Model
	byID   map[string]Model
}

// NewCatalog builds the catalog from the built-in table.
func NewCatalog() *Catalog {
	c := &Catalog{byID: make(map[string]Model, len(builtin))}
	for _, m := range builtin {
		c.add(m)
	}
	return c
}

func (c *Catalog) add(m Model) {
	if _, exists := c.byID[m.ID]; exists {
		for i := range c.models {
			if c.models[i].ID == m.ID {
				c.models[i] = m
				break
			}
		}
	} else {
		c.models = append(c.models, m)
	}
	c.byID[m.ID] = m
}

// Lookup returns the model with the given id, falling back to the
// default model for empty or unknown ids.
func (c *Catalog) Lookup(id string) Model {
	if m, ok := c.byID[id]; ok {
		return m
	}
	return c.byID[DefaultID]
}

// All returns the catalog models in declaration order. The slice is a
// copy; the catalog itself stays immutable.
func (c *Catalog) All() []Model {
	out := make([]Model, len(c.models))
	copy(out, c.models)
	return out
}

// Names returns the display names in declaration order, for pickers.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.models))
	for i, m := range c.models {
		names[i] = m.Name
	}
	return names
}

// ByName returns the model with the given display name, falling back
// to the default model. Fyne's select widget reports choices by label,
// so the picker resolves through here.
func (c *Catalog) ByName(name string) Model {
	for _, m := range c.models {
		if m.Name == name {
			return m
		}
	}
	return c.byID[DefaultID]
}
