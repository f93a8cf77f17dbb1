package kpiboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistrySeedsBuiltinDepartments(t *testing.T) {
	registry := NewRegistry()
	assert.ElementsMatch(t, AllDepartmentSlugs(), registry.Slugs())

	sales, ok := registry.Department(DeptSales)
	require.True(t, ok)
	assert.NotEmpty(t, sales.Catalog)
	assert.NotEmpty(t, sales.DefaultPlacements)
}

func TestRegistryRegisterValidatesCatalog(t *testing.T) {
	registry := NewRegistry()

	assert.Error(t, registry.Register(DepartmentConfig{Name: "No Slug", Catalog: []KpiDefinition{{ID: "a"}}}))
	assert.Error(t, registry.Register(DepartmentConfig{Slug: "x", Name: "Empty"}))
	assert.Error(t, registry.Register(DepartmentConfig{
		Slug: "x", Name: "Dup",
		Catalog: []KpiDefinition{{ID: "a"}, {ID: "a"}},
	}))
	assert.Error(t, registry.Register(DepartmentConfig{
		Slug: "x", Name: "Anonymous",
		Catalog: []KpiDefinition{{ID: ""}},
	}))
}

func TestRegistryRegisterReplaces(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(DepartmentConfig{
		Slug: DeptSales, Name: "Regional Sales",
		Catalog: []KpiDefinition{{ID: "mrr"}},
	}))
	dept, ok := registry.Department(DeptSales)
	require.True(t, ok)
	assert.Equal(t, "Regional Sales", dept.Name)
	assert.Len(t, dept.Catalog, 1)
}

func TestRegisterDepartmentHookRunsOnNewRegistries(t *testing.T) {
	RegisterDepartmentHook(func(reg *Registry) error {
		return reg.Register(DepartmentConfig{
			Slug: "hooked", Name: "Hooked",
			Catalog: []KpiDefinition{{ID: "h1"}},
		})
	})

	registry := NewRegistry()
	_, ok := registry.Department("hooked")
	assert.True(t, ok)
}
