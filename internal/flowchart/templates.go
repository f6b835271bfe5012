package flowchart

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// TemplateInfo describes one catalog entry for listing.
type TemplateInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Catalog is the closed set of pre-authored graph documents. Lookups go
// strictly through the in-memory map, never through path construction from
// user input, so an id like "../../etc/passwd" cannot reach the filesystem.
type Catalog struct {
	templates map[string]string
}

// LoadCatalog reads every *.dot file in dir into the catalog, keyed by file
// stem. A missing directory yields an empty catalog rather than an error.
func LoadCatalog(dir string) (*Catalog, error) {
	c := &Catalog{templates: make(map[string]string)}

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read template directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".dot") {
			continue
		}
		text, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %w", entry.Name(), err)
		}
		id := strings.TrimSuffix(entry.Name(), ".dot")
		c.templates[id] = string(text)
	}
	return c, nil
}

// Resolve returns the graph text for a template id.
func (c *Catalog) Resolve(id string) (string, error) {
	text, ok := c.templates[id]
	if !ok {
		return "", fmt.Errorf("%q: %w", id, ErrTemplateNotFound)
	}
	return text, nil
}

// List returns all catalog entries sorted by id, with display names derived
// from the id ("simple_process" -> "Simple Process").
func (c *Catalog) List() []TemplateInfo {
	infos := make([]TemplateInfo, 0, len(c.templates))
	for id := range c.templates {
		infos = append(infos, TemplateInfo{ID: id, Name: displayName(id)})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

// Len returns the number of templates in the catalog.
func (c *Catalog) Len() int {
	return len(c.templates)
}

func displayName(id string) string {
	words := strings.Split(strings.ReplaceAll(id, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
