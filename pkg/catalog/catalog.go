// Package catalog holds the read-only table of recommended cutting
// parameters. The table is embedded as YAML, parsed once at load time and
// never mutated afterwards, so it is safe to share across sessions without
// locking.
package catalog

import (
	_ "embed"
	"fmt"
	"strconv"

	"github.com/cnckit/cutmode/pkg/domain"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var rawCatalog []byte

// Well-known tool subtype keys referenced by the calculation engine.
const (
	SubtypeCylindrical = "cylindrical"
	SubtypeBall        = "ball"
	SubtypeCarbide     = "carbide"
)

// Range is an inclusive numeric interval, expressed as [min, max] in YAML.
type Range struct {
	Min float64
	Max float64
}

// UnmarshalYAML decodes a two-element sequence and enforces min <= max.
func (r *Range) UnmarshalYAML(value *yaml.Node) error {
	var pair []float64
	if err := value.Decode(&pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("range must have exactly two elements, got %d", len(pair))
	}
	if pair[0] > pair[1] {
		return fmt.Errorf("range min %v exceeds max %v", pair[0], pair[1])
	}
	r.Min, r.Max = pair[0], pair[1]
	return nil
}

// Entry is one leaf of the catalog: the recommended ranges for a fully
// specified tool. Depth is nil where the catalog carries no depth range
// (grooving tools).
type Entry struct {
	Speed Range  `yaml:"speed"` // m/min
	Feed  Range  `yaml:"feed"`  // mm/rev or mm/tooth
	Depth *Range `yaml:"depth"` // mm, optional
}

// group is the leaf family for one tool type. Exactly one of the maps is
// populated: Subtypes for name-keyed tools, Radii/Widths for dimension-keyed
// turning tools.
type group struct {
	Subtypes omap[Entry] `yaml:"subtypes"`
	Radii    omap[Entry] `yaml:"radii"`
	Widths   omap[Entry] `yaml:"widths"`
}

// dimensions returns whichever dimension-keyed map the group carries.
func (g *group) dimensions() *omap[Entry] {
	if g.Radii.Len() > 0 {
		return &g.Radii
	}
	if g.Widths.Len() > 0 {
		return &g.Widths
	}
	return nil
}

// Catalog is the immutable parameter table. Construct it with Load and share
// by reference.
type Catalog struct {
	materials omap[omap[omap[group]]]
}

// Load parses the embedded catalog and validates its shape.
func Load() (*Catalog, error) {
	var root omap[omap[omap[group]]]
	if err := yaml.Unmarshal(rawCatalog, &root); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	c := &Catalog{materials: root}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// MustLoad is Load for program initialization paths where the embedded
// catalog is known to be well-formed.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) validate() error {
	for _, m := range c.materials.Keys() {
		ops, _ := c.materials.Get(m)
		for _, o := range ops.Keys() {
			tools, _ := ops.Get(o)
			for _, t := range tools.Keys() {
				g, _ := tools.Get(t)
				populated := 0
				for _, entries := range []omap[Entry]{g.Subtypes, g.Radii, g.Widths} {
					if entries.Len() > 0 {
						populated++
					}
				}
				if populated != 1 {
					return fmt.Errorf("catalog path %s/%s/%s must have exactly one key family", m, o, t)
				}
			}
		}
	}
	return nil
}

// Materials lists the workpiece materials in document order.
func (c *Catalog) Materials() []string {
	return c.materials.Keys()
}

// Operations lists the operations available for a material.
func (c *Catalog) Operations(material string) []string {
	ops, ok := c.materials.Get(material)
	if !ok {
		return nil
	}
	return ops.Keys()
}

// ToolTypes lists the tool types available for a material and operation.
func (c *Catalog) ToolTypes(material, operation string) []string {
	ops, ok := c.materials.Get(material)
	if !ok {
		return nil
	}
	tools, ok := ops.Get(operation)
	if !ok {
		return nil
	}
	return tools.Keys()
}

// Subtypes lists the named subtypes for a tool type, or nil if the tool type
// is dimension-keyed.
func (c *Catalog) Subtypes(material, operation, toolType string) []string {
	g, ok := c.group(material, operation, toolType)
	if !ok {
		return nil
	}
	return g.Subtypes.Keys()
}

// Dimensions lists the discrete dimension keys (insert radii or groove
// widths) for a tool type, or nil if the tool type is name-keyed.
func (c *Catalog) Dimensions(material, operation, toolType string) []string {
	g, ok := c.group(material, operation, toolType)
	if !ok {
		return nil
	}
	dims := g.dimensions()
	if dims == nil {
		return nil
	}
	return dims.Keys()
}

// Lookup resolves a name-keyed leaf. Any missing path segment yields
// domain.ErrNoCatalogData.
func (c *Catalog) Lookup(material, operation, toolType, subtype string) (Entry, error) {
	g, ok := c.group(material, operation, toolType)
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s/%s/%s", domain.ErrNoCatalogData, material, operation, toolType)
	}
	entry, ok := g.Subtypes.Get(subtype)
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s/%s/%s/%s", domain.ErrNoCatalogData, material, operation, toolType, subtype)
	}
	return entry, nil
}

// LookupDimension resolves a dimension-keyed leaf by exact numeric match.
// The catalog holds a fixed discrete set of dimensions; values between the
// known keys are a miss, not an interpolation target.
func (c *Catalog) LookupDimension(material, operation, toolType string, dim float64) (Entry, error) {
	g, ok := c.group(material, operation, toolType)
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s/%s/%s", domain.ErrNoCatalogData, material, operation, toolType)
	}
	dims := g.dimensions()
	if dims != nil {
		for _, key := range dims.Keys() {
			v, err := strconv.ParseFloat(key, 64)
			if err != nil {
				continue
			}
			if v == dim {
				entry, _ := dims.Get(key)
				return entry, nil
			}
		}
	}
	return Entry{}, fmt.Errorf("%w: %s/%s/%s/%v", domain.ErrNoCatalogData, material, operation, toolType, dim)
}

// Walk visits every leaf entry in document order.
func (c *Catalog) Walk(fn func(path []string, entry Entry)) {
	for _, m := range c.materials.Keys() {
		ops, _ := c.materials.Get(m)
		for _, o := range ops.Keys() {
			tools, _ := ops.Get(o)
			for _, t := range tools.Keys() {
				g, _ := tools.Get(t)
				leaves := &g.Subtypes
				if dims := g.dimensions(); dims != nil {
					leaves = dims
				}
				for _, k := range leaves.Keys() {
					entry, _ := leaves.Get(k)
					fn([]string{m, o, t, k}, entry)
				}
			}
		}
	}
}

// Paths returns every leaf path as "material/operation/toolType/key".
func (c *Catalog) Paths() []string {
	var paths []string
	c.Walk(func(path []string, _ Entry) {
		paths = append(paths, path[0]+"/"+path[1]+"/"+path[2]+"/"+path[3])
	})
	return paths
}

func (c *Catalog) group(material, operation, toolType string) (group, bool) {
	ops, ok := c.materials.Get(material)
	if !ok {
		return group{}, false
	}
	tools, ok := ops.Get(operation)
	if !ok {
		return group{}, false
	}
	return tools.Get(toolType)
}
