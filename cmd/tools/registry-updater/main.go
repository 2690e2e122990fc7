// cmd/tools/registry-updater/main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"booking-workers/internal/common/validation"
	"booking-workers/pkg/registry"
)

const defaultRegistryPath = "configs/tools.json"

func main() {
	addCmd := flag.NewFlagSet("add", flag.ExitOnError)
	updateCmd := flag.NewFlagSet("update", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	listCmd := flag.NewFlagSet("list", flag.ExitOnError)

	// Add command flags
	addPath := addCmd.String("path", defaultRegistryPath, "Path to registry file")
	name := addCmd.String("name", "", "Tool name, also the default job type (e.g., check-availability)")
	displayName := addCmd.String("displayName", "", "Display Name (e.g., Check Availability)")
	description := addCmd.String("description", "", "Description")
	category := addCmd.String("category", "", "Category (e.g., bookings)")
	taskType := addCmd.String("taskType", "", "Job type when it differs from the name")
	schemaFile := addCmd.String("schema", "", "File holding the input JSON schema")
	timeout := addCmd.String("timeout", "30s", "Worker timeout")

	// Update command flags
	updatePath := updateCmd.String("path", defaultRegistryPath, "Path to registry file")
	nameUpdate := updateCmd.String("name", "", "Tool name to update")
	field := updateCmd.String("field", "", "Field to update (displayName, description, timeout, retries, ...)")
	value := updateCmd.String("value", "", "New value for the field")

	validatePath := validateCmd.String("path", defaultRegistryPath, "Path to registry file")
	listPath := listCmd.String("path", defaultRegistryPath, "Path to registry file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add":
		addCmd.Parse(os.Args[2:])
		if *name == "" || *displayName == "" || *description == "" || *category == "" {
			fmt.Println("Error: name, displayName, description, and category are required for add.")
			addCmd.Usage()
			os.Exit(1)
		}
		tool := registry.Tool{
			Name:         *name,
			DisplayName:  *displayName,
			Description:  *description,
			Category:     *category,
			TaskType:     *taskType,
			InputSchema:  map[string]interface{}{"type": "object"},
			OutputSchema: map[string]interface{}{},
			ErrorCodes:   []string{"INVALID_INPUT"},
			Timeout:      *timeout,
			Retries:      3,
			Tags:         []string{},
		}
		if *schemaFile != "" {
			schema, err := readSchema(*schemaFile)
			if err != nil {
				fmt.Printf("Error reading schema: %v\n", err)
				os.Exit(1)
			}
			tool.InputSchema = schema
		}
		if err := addTool(*addPath, tool, time.Now()); err != nil {
			fmt.Printf("Error adding tool: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Added tool: %s\n", *name)

	case "update":
		updateCmd.Parse(os.Args[2:])
		if *nameUpdate == "" || *field == "" || *value == "" {
			fmt.Println("Error: name, field, and value are required for update.")
			updateCmd.Usage()
			os.Exit(1)
		}
		if err := updateTool(*updatePath, *nameUpdate, *field, *value, time.Now()); err != nil {
			fmt.Printf("Error updating tool: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Updated tool %s, field %s to %s\n", *nameUpdate, *field, *value)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		count, err := validateRegistry(*validatePath)
		if err != nil {
			fmt.Printf("Registry validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Registry validation passed. Found %d tools.\n", count)

	case "list":
		listCmd.Parse(os.Args[2:])
		reg, err := registry.LoadRegistry(*listPath)
		if err != nil {
			fmt.Printf("Error loading registry: %v\n", err)
			os.Exit(1)
		}
		for _, tool := range reg.Tools {
			fmt.Printf("%-32s %-12s %-8s %s\n", tool.JobType(), tool.Category, tool.Timeout, tool.DisplayName)
		}

	case "help":
		fallthrough
	default:
		help()
	}
}

func readSchema(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	schema, err := validation.GetSchemaFromJSON(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if _, err := validation.Compile(schema); err != nil {
		return nil, err
	}
	return schema, nil
}

func addTool(path string, tool registry.Tool, now time.Time) error {
	if err := validation.ValidateToolName(tool.Name); err != nil {
		return err
	}

	reg, err := registry.LoadRegistry(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load registry: %w", err)
		}
		reg = &registry.ToolRegistry{Version: "1.0.0", Tools: []registry.Tool{}}
	}

	if _, err := reg.Find(tool.Name); err == nil {
		return fmt.Errorf("tool %s already exists", tool.Name)
	}

	reg.Tools = append(reg.Tools, tool)
	reg.LastUpdated = now.UTC().Format(time.RFC3339)
	return saveRegistry(reg, path)
}

func updateTool(path, name, field, value string, now time.Time) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	tool, err := reg.Find(name)
	if err != nil {
		return err
	}

	switch field {
	case "displayName":
		tool.DisplayName = value
	case "description":
		tool.Description = value
	case "category":
		tool.Category = value
	case "taskType":
		tool.TaskType = value
	case "timeout":
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid timeout value: %w", err)
		}
		tool.Timeout = value
	case "retries":
		retries, err := strconv.Atoi(value)
		if err != nil || retries < 0 {
			return fmt.Errorf("invalid retries value: %q", value)
		}
		tool.Retries = retries
	case "tags":
		tool.Tags = splitList(value)
	case "errorCodes":
		tool.ErrorCodes = splitList(value)
	case "inputSchema":
		schema, err := readSchema(value)
		if err != nil {
			return err
		}
		tool.InputSchema = schema
	default:
		return fmt.Errorf("unknown field: %s", field)
	}

	reg.LastUpdated = now.UTC().Format(time.RFC3339)
	return saveRegistry(reg, path)
}

func validateRegistry(path string) (int, error) {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return 0, fmt.Errorf("failed to load registry: %w", err)
	}
	if len(reg.Tools) == 0 {
		return 0, fmt.Errorf("registry contains no tools")
	}
	if problems := reg.Validate(); len(problems) > 0 {
		return 0, fmt.Errorf("%d problem(s):\n  %s", len(problems), strings.Join(problems, "\n  "))
	}
	return len(reg.Tools), nil
}

func splitList(value string) []string {
	out := []string{}
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// saveRegistry handles saving the registry to file
func saveRegistry(reg *registry.ToolRegistry, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := reg.Save(path); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	return nil
}

func help() {
	fmt.Print(`
Usage: registry-updater <command> [flags]

Commands:
  add      Add a new tool to the registry
  update   Update an existing tool's field
  validate Validate the registry file
  list     List registered tools
  help     Show this help message

Examples:
  registry-updater add -name check-availability -displayName "Check Availability" -description "Checks whether a location is free" -category bookings -schema schema.json
  registry-updater update -name search-locations -field timeout -value 45s
  registry-updater validate -path configs/tools.json

Use 'registry-updater <command> -h' for more information about a command.
` + "\n")
}
