package content

import (
	"errors"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/milk9111/bananarun/settings"
)

var ErrUnknownLevel = errors.New("content: unknown level")

const orderFile = "levels/order.yaml"

type orderSpec struct {
	FirstLevel string                     `yaml:"first_level"`
	Orders     map[settings.Role][]string `yaml:"orders"`
}

// Catalog answers level lookups and next-level queries.
type Catalog struct {
	levels map[string]*Level
	first  string
	orders map[settings.Role][]string
}

func NewCatalog(levels []*Level, first string, orders map[settings.Role][]string) *Catalog {
	c := &Catalog{
		levels: make(map[string]*Level, len(levels)),
		first:  first,
		orders: orders,
	}
	for _, l := range levels {
		if l != nil {
			c.levels[l.ID] = l
		}
	}
	return c
}

// LoadCatalog reads the level order and every level file from src.
func LoadCatalog(src Source) (*Catalog, error) {
	order, err := LoadSpec[orderSpec](src, orderFile)
	if err != nil {
		return nil, err
	}
	names, err := src.List("levels")
	if err != nil {
		return nil, err
	}
	slices.Sort(names)

	var levels []*Level
	for _, name := range names {
		if !isLevelFile(name) {
			continue
		}
		lvl, err := loadLevel(src, name)
		if err != nil {
			return nil, err
		}
		levels = append(levels, lvl)
	}

	c := NewCatalog(levels, order.FirstLevel, order.Orders)
	if _, ok := c.levels[c.first]; !ok {
		return nil, fmt.Errorf("%w: first level %q", ErrUnknownLevel, c.first)
	}
	for role, ids := range c.orders {
		for _, id := range ids {
			if _, ok := c.levels[id]; !ok {
				return nil, fmt.Errorf("%w: %q in %s order", ErrUnknownLevel, id, role)
			}
		}
	}
	return c, nil
}

func loadLevel(src Source, name string) (*Level, error) {
	lvl, err := LoadSpec[Level](src, name)
	if err != nil {
		return nil, err
	}
	if err := lvl.Validate(); err != nil {
		return nil, fmt.Errorf("content: %s: %w", name, err)
	}
	return &lvl, nil
}

// Reload re-reads one changed level file in place. The level order is not
// hot-reloaded.
func (c *Catalog) Reload(src Source, name string) (*Level, error) {
	if c == nil {
		return nil, fmt.Errorf("content: reload %s: nil catalog", name)
	}
	clean := cleanContentPath(name)
	if i := strings.LastIndex(clean, "levels/"); i > 0 {
		clean = clean[i:]
	}
	if !isLevelFile(clean) {
		return nil, fmt.Errorf("content: reload %s: not a level file", name)
	}
	lvl, err := loadLevel(src, clean)
	if err != nil {
		return nil, err
	}
	c.levels[lvl.ID] = lvl
	return lvl, nil
}

// Lookup returns the level with id. Unknown ids resolve to the first level.
func (c *Catalog) Lookup(id string) *Level {
	if c == nil {
		return nil
	}
	if lvl, ok := c.levels[id]; ok {
		return lvl
	}
	return c.levels[c.first]
}

func (c *Catalog) Has(id string) bool {
	if c == nil {
		return false
	}
	_, ok := c.levels[id]
	return ok
}

func (c *Catalog) FirstLevelID() string {
	if c == nil {
		return ""
	}
	return c.first
}

// NextLevelID returns the level after id in role's order. ok is false when
// id is the last level or not part of the order.
func (c *Catalog) NextLevelID(id string, role settings.Role) (string, bool) {
	if c == nil {
		return "", false
	}
	order := c.orders[role]
	if role != settings.RoleSpud {
		order = c.orders[settings.RoleMonkey]
	}
	i := slices.Index(order, id)
	if i < 0 || i+1 >= len(order) {
		return "", false
	}
	return order[i+1], true
}

func isLevelFile(name string) bool {
	return isSpecFile(name) && path.Base(name) != path.Base(orderFile)
}
