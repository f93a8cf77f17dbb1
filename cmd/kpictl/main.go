package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-kpiboard/components/kpiboard"
)

type cli struct {
	Validate validateCmd `cmd:"" help:"Validate a KPI catalog manifest."`
	Show     showCmd     `cmd:"" help:"Print the departments and KPIs a manifest (or the built-in catalog) declares."`
	Scaffold scaffoldCmd `cmd:"" help:"Scaffold a department entry into a catalog manifest."`
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Description("Catalog tooling for go-kpiboard department manifests."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

type validateCmd struct {
	ManifestPath string `arg:"" type:"path" help:"Path to the catalog manifest YAML file."`
}

func (cmd *validateCmd) Run(_ context.Context) error {
	doc, err := kpiboard.ReadManifest(cmd.ManifestPath)
	if err != nil {
		return err
	}
	// Registration applies the catalog checks a live registry would run.
	registry := kpiboard.NewRegistry()
	for _, dept := range doc.Departments {
		if err := registry.Register(dept.Config()); err != nil {
			return err
		}
	}
	fmt.Fprintf(os.Stdout, "✓ %s is valid (%d departments)\n", cmd.ManifestPath, len(doc.Departments))
	return nil
}

type showCmd struct {
	ManifestPath string `type:"path" help:"Optional manifest to load on top of the built-in catalog."`
	Department   string `help:"Limit output to one department slug."`
}

func (cmd *showCmd) Run(_ context.Context) error {
	registry := kpiboard.NewRegistry()
	if cmd.ManifestPath != "" {
		if _, err := registry.LoadManifestFile(cmd.ManifestPath); err != nil {
			return err
		}
	}

	departments := registry.Departments()
	if cmd.Department != "" {
		dept, ok := registry.Department(cmd.Department)
		if !ok {
			return fmt.Errorf("kpictl: unknown department %s", cmd.Department)
		}
		departments = []kpiboard.DepartmentConfig{dept}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()
	for _, dept := range departments {
		fmt.Fprintf(w, "%s\t%s\t%d KPIs\n", dept.Slug, dept.Name, len(dept.Catalog))
		for _, def := range dept.Catalog {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", def.ID, def.DisplayTitle, def.DefaultChart)
		}
	}
	return nil
}

type scaffoldCmd struct {
	Slug         string   `required:"" help:"Department slug (e.g. partnerships)."`
	Name         string   `required:"" help:"Display name for the department."`
	KPI          []string `name:"kpi" required:"" help:"KPI id to include (use multiple --kpi flags)."`
	ManifestPath string   `required:"" type:"path" help:"Path to the catalog manifest YAML file to update."`
	Chart        string   `default:"LineChart" help:"Default chart type for scaffolded KPIs."`
	Overwrite    bool     `help:"Overwrite an existing department entry if present."`
}

func (cmd *scaffoldCmd) Run(_ context.Context) error {
	chart := kpiboard.ChartType(cmd.Chart)
	if !chart.Valid() {
		return fmt.Errorf("kpictl: invalid chart type %q", cmd.Chart)
	}

	manifestPath, err := filepath.Abs(cmd.ManifestPath)
	if err != nil {
		return fmt.Errorf("kpictl: resolve manifest path: %w", err)
	}
	doc, err := loadOrInitManifest(manifestPath)
	if err != nil {
		return err
	}

	kpis := make([]kpiboard.KpiDefinition, 0, len(cmd.KPI))
	for _, id := range cmd.KPI {
		kpis = append(kpis, kpiboard.KpiDefinition{
			ID:           id,
			DisplayTitle: kpiboard.MetricTitle(id),
			DefaultChart: chart,
		})
	}
	entry := kpiboard.ManifestDepartment{
		Slug: cmd.Slug,
		Name: cmd.Name,
		KPIs: kpis,
	}

	replaced := false
	for idx := range doc.Departments {
		if doc.Departments[idx].Slug == cmd.Slug {
			if !cmd.Overwrite {
				return fmt.Errorf("kpictl: manifest already defines department %s (use --overwrite to replace)", cmd.Slug)
			}
			doc.Departments[idx] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		doc.Departments = append(doc.Departments, entry)
	}
	sort.Slice(doc.Departments, func(i, j int) bool {
		return doc.Departments[i].Slug < doc.Departments[j].Slug
	})

	if err := writeManifest(manifestPath, doc); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Added %s (%d KPIs) to %s\n", cmd.Slug, len(kpis), manifestPath)
	return nil
}

func loadOrInitManifest(path string) (*kpiboard.CatalogManifest, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &kpiboard.CatalogManifest{
				Version: kpiboard.ManifestVersion,
				Source:  path,
			}, nil
		}
		return nil, fmt.Errorf("kpictl: stat manifest: %w", err)
	}
	return kpiboard.ReadManifest(path)
}

func writeManifest(path string, doc *kpiboard.CatalogManifest) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("kpictl: mkdir %s: %w", filepath.Dir(path), err)
	}
	tmpDoc := *doc
	tmpDoc.Source = ""

	file, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("kpictl: create manifest %s: %w", path, err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	defer encoder.Close()
	if err := encoder.Encode(tmpDoc); err != nil {
		return fmt.Errorf("kpictl: write manifest: %w", err)
	}
	return nil
}
