package device

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// customFile is the on-disk shape of a user devices file.
type customFile struct {
	Devices []Model `yaml:"devices"`
}

// LoadCustom merges device definitions from a YAML file into the
// catalog. A definition with an existing id overrides the built-in
// model. A missing file is not an error; the catalog is simply left
// as built. This runs once at startup, before the catalog is handed
// out, so the immutability contract still holds.
func (c *Catalog) LoadCustom(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read devices file: %w", err)
	}

	var file customFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse devices file %s: %w", path, err)
	}

	for _, m := range file.Devices {
		if m.ID == "" || m.Width <= 0 || m.Height <= 0 {
			return fmt.Errorf("devices file %s: device %q needs an id and positive dimensions", path, m.Name)
		}
		if m.PixelRatio <= 0 {
			m.PixelRatio = 2
		}
		if m.Notch == "" {
			m.Notch = NotchNone
		}
		c.add(m)
	}
	return nil
}
