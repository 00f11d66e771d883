// Package catalog loads the static documentation corpus and user directory
// that back the mock collaborators.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/spec-kit/support-agent/internal/domain"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

// Catalog is the immutable data set loaded once at startup.
type Catalog struct {
	Documents []domain.Document
	Users     map[string]domain.UserContext
}

type fileFormat struct {
	Documents []domain.Document `yaml:"documents"`
	Users     []userRecord      `yaml:"users"`
}

type userRecord struct {
	UserID         string   `yaml:"userId"`
	Plan           string   `yaml:"plan"`
	Role           string   `yaml:"role"`
	RecentActivity []string `yaml:"recentActivity"`
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultFixtures)
}

// Load reads a catalog from path, or the embedded default when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes and validates a YAML catalog.
func Parse(raw []byte) (*Catalog, error) {
	var file fileFormat
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}

	cat := &Catalog{
		Documents: make([]domain.Document, 0, len(file.Documents)),
		Users:     make(map[string]domain.UserContext, len(file.Users)),
	}

	for i, doc := range file.Documents {
		if strings.TrimSpace(doc.Topic) == "" {
			return nil, fmt.Errorf("document %d: topic required", i)
		}
		keywords := make([]string, 0, len(doc.Keywords))
		for _, kw := range doc.Keywords {
			keywords = append(keywords, strings.ToLower(kw))
		}
		doc.Keywords = keywords
		cat.Documents = append(cat.Documents, doc)
	}

	for _, rec := range file.Users {
		if rec.UserID == "" {
			return nil, fmt.Errorf("user record without userId")
		}
		if _, dup := cat.Users[rec.UserID]; dup {
			return nil, fmt.Errorf("user %s: duplicate id", rec.UserID)
		}
		plan, err := domain.ParsePlan(rec.Plan)
		if err != nil {
			return nil, fmt.Errorf("user %s: %w", rec.UserID, err)
		}
		role, err := domain.ParseRole(rec.Role)
		if err != nil {
			return nil, fmt.Errorf("user %s: %w", rec.UserID, err)
		}
		activity := rec.RecentActivity
		if activity == nil {
			activity = []string{}
		}
		cat.Users[rec.UserID] = domain.UserContext{
			UserID:         rec.UserID,
			Plan:           plan,
			Role:           role,
			RecentActivity: activity,
		}
	}

	return cat, nil
}
