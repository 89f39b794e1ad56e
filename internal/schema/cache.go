package schema

import (
	"encoding/gob"
	"fmt"
	"os"
)

// Cache persists a discovered graph as a single gob blob at a fixed path.
// The cache never expires; deleting the file is the only invalidation.
type Cache struct {
	Path string
}

// Load returns the cached graph, or (nil, nil) when no cache file exists.
func (c *Cache) Load() (*Graph, error) {
	f, err := os.Open(c.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open graph cache: %v", err)
	}
	defer f.Close()

	var g Graph
	if err := gob.NewDecoder(f).Decode(&g); err != nil {
		return nil, fmt.Errorf("failed to decode graph cache: %v", err)
	}
	return &g, nil
}

// Save writes the graph blob, replacing any previous cache.
func (c *Cache) Save(g *Graph) error {
	f, err := os.Create(c.Path)
	if err != nil {
		return fmt.Errorf("failed to create graph cache: %v", err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(g); err != nil {
		return fmt.Errorf("failed to encode graph cache: %v", err)
	}
	return nil
}
