package dashboard

import (
	_ "embed"
	"fmt"

	"frontend-gin/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Service is one sidebar entry.
type Service struct {
	Name string `yaml:"name"`
	Key  string `yaml:"key"`
}

type Catalog struct {
	Roles map[models.Role][]Service `yaml:"roles"`
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse service catalog: %w", err)
	}
	for role, services := range c.Roles {
		if !role.Valid() {
			return nil, fmt.Errorf("parse service catalog: unknown role %q", role)
		}
		for _, s := range services {
			if s.Key == "" {
				return nil, fmt.Errorf("parse service catalog: %s service %q has no key", role, s.Name)
			}
		}
	}
	return &c, nil
}

// DefaultCatalog returns the catalog compiled into the binary.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(catalogYAML)
}

// Services lists role's sidebar entries. Unknown roles have none.
func (c *Catalog) Services(role models.Role) []Service {
	return c.Roles[role]
}

// serviceMap translates URL service keys into section identifiers. Keys that
// are not listed are identifiers already.
var serviceMap = map[string]string{
	"patients":       "PatientList",
	"patient-report": "PatientReport",
}

func ComponentFor(serviceKey string) string {
	if id, ok := serviceMap[serviceKey]; ok {
		return id
	}
	return serviceKey
}
