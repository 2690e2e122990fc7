// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"booking-workers/internal/common/errors"
	"booking-workers/internal/common/validation"
)

func LoadRegistry(path string) (*ToolRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ToolRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	return &reg, nil
}

// Save writes the registry back as indented JSON.
func (r *ToolRegistry) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// Find returns the tool with the given name.
func (r *ToolRegistry) Find(name string) (*Tool, error) {
	for i := range r.Tools {
		if r.Tools[i].Name == name {
			return &r.Tools[i], nil
		}
	}
	return nil, errors.NewToolNotFoundError(name)
}

// InputSchema compiles the input schema of the named tool. Tools without a
// schema yield nil.
func (r *ToolRegistry) InputSchema(name string) (*validation.Schema, error) {
	tool, err := r.Find(name)
	if err != nil {
		return nil, err
	}
	if len(tool.InputSchema) == 0 {
		return nil, nil
	}
	return validation.Compile(tool.InputSchema)
}

// Validate checks every tool entry and returns one message per problem.
func (r *ToolRegistry) Validate() []string {
	var problems []string
	seen := make(map[string]bool)

	for i, tool := range r.Tools {
		label := tool.Name
		if label == "" {
			label = fmt.Sprintf("tools[%d]", i)
		}

		if err := validation.ValidateToolName(tool.Name); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", label, err))
		}
		if seen[tool.Name] {
			problems = append(problems, fmt.Sprintf("%s: duplicate tool name", label))
		}
		seen[tool.Name] = true

		if tool.Description == "" {
			problems = append(problems, fmt.Sprintf("%s: description is required", label))
		}
		if len(tool.InputSchema) > 0 {
			if _, err := validation.Compile(tool.InputSchema); err != nil {
				problems = append(problems, fmt.Sprintf("%s: invalid input schema: %v", label, err))
			}
		}
		if tool.Timeout != "" {
			if _, err := time.ParseDuration(tool.Timeout); err != nil {
				problems = append(problems, fmt.Sprintf("%s: invalid timeout %q", label, tool.Timeout))
			}
		}
		if tool.Retries < 0 {
			problems = append(problems, fmt.Sprintf("%s: retries must not be negative", label))
		}
	}
	return problems
}
