package kpiboard

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// PayloadValidator validates inbound layout and chart-configuration payloads
// before they reach a board.
type PayloadValidator interface {
	ValidateLayout(layout GridLayout) error
	ValidateChartConfig(cfg ChartConfiguration) error
}

// Layout payloads: every breakpoint maps to a list of placements with the
// react-grid-layout field names.
const layoutSchemaJSON = `{
  "type": "object",
  "additionalProperties": {
    "type": "array",
    "items": {
      "type": "object",
      "required": ["i", "x", "y", "w", "h"],
      "properties": {
        "i": {"type": "string", "minLength": 1},
        "x": {"type": "integer", "minimum": 0, "maximum": 12},
        "y": {"type": "integer", "minimum": 0},
        "w": {"type": "integer", "minimum": 1, "maximum": 12},
        "h": {"type": "integer", "minimum": 1}
      },
      "additionalProperties": true
    }
  }
}`

const chartConfigSchemaJSON = `{
  "type": "object",
  "additionalProperties": {
    "type": "string",
    "enum": [
      "AreaChart", "BarChart", "ComposedChart", "LineChart",
      "PieChart", "RadarChart", "RadialBarChart", "ScatterChart"
    ]
  }
}`

// JSONSchemaValidator compiles the payload schemas once and validates
// decoded payloads against them.
type JSONSchemaValidator struct {
	once        sync.Once
	compileErr  error
	layout      *jsonschema.Schema
	chartConfig *jsonschema.Schema
}

// NewJSONSchemaValidator builds a validator backed by jsonschema v5.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{}
}

// ValidateLayout ensures a layout payload fits the grid schema.
func (v *JSONSchemaValidator) ValidateLayout(layout GridLayout) error {
	if err := v.compile(); err != nil {
		return err
	}
	payload, err := roundTrip(layout)
	if err != nil {
		return fmt.Errorf("kpiboard: normalize layout payload: %w", err)
	}
	if err := v.layout.Validate(payload); err != nil {
		return fmt.Errorf("kpiboard: layout payload failed validation: %w", err)
	}
	return nil
}

// ValidateChartConfig ensures a chart configuration payload only names
// supported chart types.
func (v *JSONSchemaValidator) ValidateChartConfig(cfg ChartConfiguration) error {
	if err := v.compile(); err != nil {
		return err
	}
	payload, err := roundTrip(cfg)
	if err != nil {
		return fmt.Errorf("kpiboard: normalize chart config payload: %w", err)
	}
	if err := v.chartConfig.Validate(payload); err != nil {
		return fmt.Errorf("kpiboard: chart config payload failed validation: %w", err)
	}
	return nil
}

func (v *JSONSchemaValidator) compile() error {
	v.once.Do(func() {
		v.layout, v.compileErr = compileSchema("layout.json", layoutSchemaJSON)
		if v.compileErr != nil {
			return
		}
		v.chartConfig, v.compileErr = compileSchema("chart_config.json", chartConfigSchemaJSON)
	})
	return v.compileErr
}

func compileSchema(name, source string) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, strings.NewReader(source)); err != nil {
		return nil, fmt.Errorf("kpiboard: load schema %s: %w", name, err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("kpiboard: compile schema %s: %w", name, err)
	}
	return compiled, nil
}

// roundTrip re-decodes a typed value into plain JSON shapes, which is what
// the schema library validates.
func roundTrip(value any) (any, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

type noopPayloadValidator struct{}

func (noopPayloadValidator) ValidateLayout(GridLayout) error              { return nil }
func (noopPayloadValidator) ValidateChartConfig(ChartConfiguration) error { return nil }
