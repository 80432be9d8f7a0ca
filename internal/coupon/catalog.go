package coupon

// mapCatalog implements Catalog using a map for O(1) lookups.
type mapCatalog struct {
	definitions map[string]Definition
}

// NewMapCatalog creates a new map-based coupon catalog.
func NewMapCatalog(capacity int) Catalog {
	return &mapCatalog{
		definitions: make(map[string]Definition, capacity),
	}
}

// Get returns the definition for a code, if present.
func (c *mapCatalog) Get(code string) (Definition, bool) {
	def, ok := c.definitions[code]
	return def, ok
}

// Size returns the number of definitions in the catalog.
func (c *mapCatalog) Size() int {
	return len(c.definitions)
}

// Add inserts a definition, replacing any previous one for the same code.
func (c *mapCatalog) Add(def Definition) {
	c.definitions[def.Code] = def
}
