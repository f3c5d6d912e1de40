// Package content holds the holocard records: the static biography table
// mapped onto the navigable bodies.
package content

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Stat is a label/value row on the telemetry panel.
type Stat struct {
	Label string `toml:"label"`
	Value string `toml:"value"`
}

// Personal is the relationship a body stands for.
type Personal struct {
	Relation string `toml:"relation"`
	Name     string `toml:"name"`
	Bio      string `toml:"bio"`
}

// Project is a named piece of work with its stack.
type Project struct {
	Name  string `toml:"name"`
	Desc  string `toml:"desc"`
	Stack string `toml:"stack"`
}

// Role is one entry on a career or education timeline.
type Role struct {
	Role    string `toml:"role"`
	Company string `toml:"company"`
	Period  string `toml:"period"`
}

// Podcast is an appearance with its context line.
type Podcast struct {
	Title   string `toml:"title"`
	Context string `toml:"context"`
}

// Professional is the service record panel.
type Professional struct {
	Title    string    `toml:"title"`
	Summary  string    `toml:"summary"`
	Skills   []string  `toml:"skills"`
	Projects []Project `toml:"projects"`
	History  []Role    `toml:"history"`
	Podcasts []Podcast `toml:"podcasts"`
}

// Body is one holocard record.
type Body struct {
	ID           string       `toml:"id"`
	Title        string       `toml:"title"`
	Subtitle     string       `toml:"subtitle"`
	Accent       string       `toml:"accent"`
	Stats        []Stat       `toml:"stats"`
	Narrative    string       `toml:"narrative"`
	Quote        string       `toml:"quote"`
	Personal     Personal     `toml:"personal"`
	Professional Professional `toml:"professional"`
}

// Validation errors.
var (
	ErrEmptyCatalog  = errors.New("content: no bodies defined")
	ErrMissingID     = errors.New("content: body without id")
	ErrDuplicateBody = errors.New("content: duplicate body")
	ErrMissingBody   = errors.New("content: missing body")
	ErrBadAccent     = errors.New("content: accent must be #RRGGBB")
	ErrUnknownBody   = errors.New("content: unknown body")
)

var accentPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Catalog is an ordered, read-only set of holocard records.
type Catalog struct {
	bodies []Body
	byID   map[string]int
}

// NewCatalog indexes bodies in order. It validates ids and accents but
// not coverage; see Require.
func NewCatalog(bodies []Body) (*Catalog, error) {
	if len(bodies) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		bodies: make([]Body, len(bodies)),
		byID:   make(map[string]int, len(bodies)),
	}
	for i, b := range bodies {
		b.ID = strings.ToLower(strings.TrimSpace(b.ID))
		if b.ID == "" {
			return nil, fmt.Errorf("%w (entry %d)", ErrMissingID, i)
		}
		if _, dup := c.byID[b.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateBody, b.ID)
		}
		if b.Accent != "" && !accentPattern.MatchString(b.Accent) {
			return nil, fmt.Errorf("%w: %s has %q", ErrBadAccent, b.ID, b.Accent)
		}
		c.bodies[i] = b
		c.byID[b.ID] = i
	}
	return c, nil
}

// Lookup returns the record for id.
func (c *Catalog) Lookup(id string) (Body, bool) {
	if c == nil {
		return Body{}, false
	}
	i, ok := c.byID[id]
	if !ok {
		return Body{}, false
	}
	return c.bodies[i], true
}

// MustLookup is Lookup returning ErrUnknownBody for a missing id.
func (c *Catalog) MustLookup(id string) (Body, error) {
	b, ok := c.Lookup(id)
	if !ok {
		return Body{}, fmt.Errorf("%w: %s", ErrUnknownBody, id)
	}
	return b, nil
}

// IDs returns record ids in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.bodies))
	for i, b := range c.bodies {
		ids[i] = b.ID
	}
	return ids
}

// Bodies returns a copy of every record in order.
func (c *Catalog) Bodies() []Body {
	out := make([]Body, len(c.bodies))
	copy(out, c.bodies)
	return out
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.bodies)
}

// Require checks that every id has a record.
func (c *Catalog) Require(ids []string) error {
	var missing []string
	for _, id := range ids {
		if _, ok := c.byID[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingBody, strings.Join(missing, ", "))
	}
	return nil
}
