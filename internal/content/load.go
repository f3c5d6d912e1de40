package content

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed default.toml
var defaultTOML []byte

// file is the on-disk layout: a list of [[body]] tables.
type file struct {
	Bodies []Body `toml:"body"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(defaultTOML)
	if err != nil {
		panic(fmt.Sprintf("content: embedded catalog is invalid: %v", err))
	}
	return c
}

// DefaultTOML returns the raw embedded catalog.
func DefaultTOML() []byte {
	out := make([]byte, len(defaultTOML))
	copy(out, defaultTOML)
	return out
}

// Parse decodes a TOML catalog.
func Parse(data []byte) (*Catalog, error) {
	var f file
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parse content: unknown key %q", undecoded[0].String())
	}
	return NewCatalog(f.Bodies)
}

// Load reads a TOML catalog from path. An empty path returns Default().
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Encode writes the catalog as TOML.
func Encode(w io.Writer, c *Catalog) error {
	enc := toml.NewEncoder(w)
	enc.Indent = ""
	if err := enc.Encode(file{Bodies: c.Bodies()}); err != nil {
		return fmt.Errorf("encode content: %w", err)
	}
	return nil
}
