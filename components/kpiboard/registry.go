package kpiboard

import (
	"fmt"
	"sort"
	"sync"
)

// DepartmentHook lets packages register departments during init().
type DepartmentHook func(reg *Registry) error

var (
	globalHookMu sync.Mutex
	globalHooks  []DepartmentHook
)

// RegisterDepartmentHook registers a hook executed against new registries.
func RegisterDepartmentHook(h DepartmentHook) {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	globalHooks = append(globalHooks, h)
}

// Registry holds the known department configurations. A fresh registry is
// seeded with the eight built-in departments and then amended by hooks and
// manifests.
type Registry struct {
	mu          sync.RWMutex
	departments map[string]DepartmentConfig
}

// NewRegistry builds a registry with the built-in departments and applies
// global hooks.
func NewRegistry() *Registry {
	reg := &Registry{
		departments: map[string]DepartmentConfig{},
	}
	for _, cfg := range DefaultDepartmentConfigs() {
		_ = reg.Register(cfg)
	}
	_ = reg.ApplyHooks()
	return reg
}

// ApplyHooks executes registered department hooks.
func (r *Registry) ApplyHooks() error {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	for _, hook := range globalHooks {
		if err := hook(r); err != nil {
			return err
		}
	}
	return nil
}

// Register stores or replaces a department configuration.
func (r *Registry) Register(cfg DepartmentConfig) error {
	if cfg.Slug == "" {
		return fmt.Errorf("kpiboard: department slug is required")
	}
	if len(cfg.Catalog) == 0 {
		return fmt.Errorf("kpiboard: department %s has an empty catalog", cfg.Slug)
	}
	seen := make(map[string]struct{}, len(cfg.Catalog))
	for _, def := range cfg.Catalog {
		if def.ID == "" {
			return fmt.Errorf("kpiboard: department %s has a kpi with no id", cfg.Slug)
		}
		if _, dup := seen[def.ID]; dup {
			return fmt.Errorf("kpiboard: department %s duplicates kpi id %s", cfg.Slug, def.ID)
		}
		seen[def.ID] = struct{}{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.departments[cfg.Slug] = cfg
	return nil
}

// Department fetches a department configuration by slug.
func (r *Registry) Department(slug string) (DepartmentConfig, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.departments[slug]
	return cfg, ok
}

// Departments returns all registered departments sorted by slug.
func (r *Registry) Departments() []DepartmentConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]DepartmentConfig, 0, len(r.departments))
	for _, cfg := range r.departments {
		out = append(out, cfg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

// Slugs returns the registered department slugs sorted.
func (r *Registry) Slugs() []string {
	deps := r.Departments()
	slugs := make([]string, len(deps))
	for i, cfg := range deps {
		slugs[i] = cfg.Slug
	}
	return slugs
}
