// Package catalog holds the read-only portfolio content: the owner's
// profile, the project list and the certificate list. A catalog is loaded
// once at start-up and never mutated afterwards.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure reported by Validate.
var ErrInvalid = errors.New("invalid catalog")

//go:embed default.yaml
var defaultCatalog []byte

type Profile struct {
	Name     string   `yaml:"name" json:"name"`
	Initial  string   `yaml:"initial" json:"initial"`
	Headline string   `yaml:"headline" json:"headline"`
	Location string   `yaml:"location" json:"location"`
	Tagline  string   `yaml:"tagline" json:"tagline"`
	About    string   `yaml:"about" json:"about"` // markdown
	Email    string   `yaml:"email" json:"email"`
	Phone    string   `yaml:"phone" json:"phone"`
	GitHub   string   `yaml:"github" json:"github"`
	Resume   string   `yaml:"resume" json:"resume"`
	Footer   []string `yaml:"footer" json:"footer"`
}

type Project struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Link        string `yaml:"link" json:"link"`
}

type Certificate struct {
	ID     int    `yaml:"id" json:"id"`
	Title  string `yaml:"title" json:"title"`
	Issuer string `yaml:"issuer" json:"issuer"`
	Date   string `yaml:"date" json:"date"`
	Image  string `yaml:"image" json:"image"`
}

type Catalog struct {
	Profile      Profile       `yaml:"profile" json:"profile"`
	Projects     []Project     `yaml:"projects" json:"projects"`
	Certificates []Certificate `yaml:"certificates" json:"certificates"`
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog from a YAML file. An empty path loads the default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.Profile.Initial == "" {
		c.Profile.Initial = strings.ToUpper(string([]rune(strings.TrimSpace(c.Profile.Name))[:1]))
	}
	return &c, nil
}

// Validate checks the invariants renderers rely on: every certificate has a
// unique positive id, and nothing a template links to is blank.
func (c *Catalog) Validate() error {
	if strings.TrimSpace(c.Profile.Name) == "" {
		return fmt.Errorf("%w: profile name is required", ErrInvalid)
	}
	for i, p := range c.Projects {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("%w: project %d has no name", ErrInvalid, i)
		}
		if strings.TrimSpace(p.Link) == "" {
			return fmt.Errorf("%w: project %q has no link", ErrInvalid, p.Name)
		}
	}
	seen := make(map[int]bool, len(c.Certificates))
	for _, cert := range c.Certificates {
		if cert.ID <= 0 {
			return fmt.Errorf("%w: certificate %q needs a positive id", ErrInvalid, cert.Title)
		}
		if seen[cert.ID] {
			return fmt.Errorf("%w: duplicate certificate id %d", ErrInvalid, cert.ID)
		}
		seen[cert.ID] = true
		if strings.TrimSpace(cert.Title) == "" {
			return fmt.Errorf("%w: certificate %d has no title", ErrInvalid, cert.ID)
		}
		if strings.TrimSpace(cert.Image) == "" {
			return fmt.Errorf("%w: certificate %d has no image", ErrInvalid, cert.ID)
		}
	}
	return nil
}

// Certificate looks up a certificate by id.
func (c *Catalog) Certificate(id int) (Certificate, bool) {
	for _, cert := range c.Certificates {
		if cert.ID == id {
			return cert, true
		}
	}
	return Certificate{}, false
}

// Contains reports whether cert is an entry of this catalog.
func (c *Catalog) Contains(cert Certificate) bool {
	got, ok := c.Certificate(cert.ID)
	return ok && got == cert
}

// Project returns the project at index i.
func (c *Catalog) Project(i int) (Project, bool) {
	if i < 0 || i >= len(c.Projects) {
		return Project{}, false
	}
	return c.Projects[i], true
}
