package kpiboard

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	manifestVersionV1 = "1"
	// ManifestVersion exposes the current manifest format version for tooling.
	ManifestVersion = manifestVersionV1
)

// CatalogManifest models a YAML manifest describing department KPI catalogs.
// Manifests let operators add or override departments without a rebuild.
type CatalogManifest struct {
	Version     string               `json:"version" yaml:"version"`
	Name        string               `json:"name,omitempty" yaml:"name,omitempty"`
	Departments []ManifestDepartment `json:"departments" yaml:"departments"`
	Source      string               `json:"-" yaml:"-"`
}

// ManifestDepartment describes one department entry within a manifest.
type ManifestDepartment struct {
	Slug       string          `json:"slug" yaml:"slug"`
	Name       string          `json:"name" yaml:"name"`
	KPIs       []KpiDefinition `json:"kpis" yaml:"kpis"`
	Placements []Placement     `json:"placements,omitempty" yaml:"placements,omitempty"`
}

// Config converts a manifest entry into a DepartmentConfig. Entries without
// authored placements get the standard two-per-row table.
func (d ManifestDepartment) Config() DepartmentConfig {
	cfg := DepartmentConfig{
		Slug:              d.Slug,
		Name:              d.Name,
		Catalog:           d.KPIs,
		DefaultPlacements: d.Placements,
	}
	if len(cfg.DefaultPlacements) == 0 {
		ids := make([]string, len(d.KPIs))
		for i, def := range d.KPIs {
			ids[i] = def.ID
		}
		cfg.DefaultPlacements = twoPerRow(ids...)
	}
	return cfg
}

// LoadManifestFile reads a manifest from disk and registers every department
// it declares.
func (r *Registry) LoadManifestFile(path string) (*CatalogManifest, error) {
	doc, err := ReadManifest(path)
	if err != nil {
		return nil, err
	}
	for _, dept := range doc.Departments {
		if err := r.Register(dept.Config()); err != nil {
			return nil, fmt.Errorf("kpiboard: register department %s from %s: %w", dept.Slug, doc.Source, err)
		}
	}
	return doc, nil
}

// ReadManifest loads a manifest file from disk without registering it.
func ReadManifest(path string) (*CatalogManifest, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("kpiboard: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("kpiboard: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeManifest reads a manifest from any reader.
func DecodeManifest(r io.Reader) (*CatalogManifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc CatalogManifest
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("kpiboard: manifest is empty")
		}
		return nil, fmt.Errorf("kpiboard: parse manifest: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate ensures the manifest satisfies required fields.
func (doc *CatalogManifest) Validate() error {
	if doc.Version != manifestVersionV1 {
		return fmt.Errorf("kpiboard: unsupported manifest version %q", doc.Version)
	}
	seen := make(map[string]struct{}, len(doc.Departments))
	for idx, dept := range doc.Departments {
		if dept.Slug == "" {
			return fmt.Errorf("kpiboard: manifest department at index %d is missing slug", idx)
		}
		if _, exists := seen[dept.Slug]; exists {
			return fmt.Errorf("kpiboard: manifest duplicates department slug %s", dept.Slug)
		}
		seen[dept.Slug] = struct{}{}
		if len(dept.KPIs) == 0 {
			return fmt.Errorf("kpiboard: manifest department %s has no kpis", dept.Slug)
		}
		ids := make(map[string]struct{}, len(dept.KPIs))
		for _, def := range dept.KPIs {
			if def.ID == "" {
				return fmt.Errorf("kpiboard: manifest department %s has a kpi with no id", dept.Slug)
			}
			if _, dup := ids[def.ID]; dup {
				return fmt.Errorf("kpiboard: manifest department %s duplicates kpi id %s", dept.Slug, def.ID)
			}
			ids[def.ID] = struct{}{}
			if def.DefaultChart != "" && !def.DefaultChart.Valid() {
				return fmt.Errorf("kpiboard: manifest kpi %s/%s has invalid chart type %q", dept.Slug, def.ID, def.DefaultChart)
			}
		}
	}
	return nil
}

func (doc *CatalogManifest) applyDefaults() {
	if doc.Version == "" {
		doc.Version = manifestVersionV1
	}
	for i := range doc.Departments {
		for j := range doc.Departments[i].KPIs {
			def := &doc.Departments[i].KPIs[j]
			if def.DefaultChart == "" {
				def.DefaultChart = ChartLine
			}
			if def.XKey == "" {
				def.XKey = "month"
			}
			if def.YKey == "" {
				def.YKey = "value"
			}
		}
	}
}
