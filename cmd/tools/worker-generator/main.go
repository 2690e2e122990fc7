// cmd/tools/worker-generator/main.go
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"booking-workers/pkg/registry"
)

// WorkerData holds data for templates
type WorkerData struct {
	Name        string
	PackageName string
	TaskType    string
	Description string
	Timeout     string
	InputFields string
	// UsesReference is set when an input field decodes as a location reference.
	UsesReference bool
}

// schemaProperties extracts properties from a JSON schema object
func schemaProperties(schema map[string]interface{}) map[string]interface{} {
	if props, ok := schema["properties"].(map[string]interface{}); ok {
		return props
	}
	return map[string]interface{}{}
}

func requiredSet(schema map[string]interface{}) map[string]bool {
	out := make(map[string]bool)
	if list, ok := schema["required"].([]interface{}); ok {
		for _, r := range list {
			if s, ok := r.(string); ok {
				out[s] = true
			}
		}
	}
	return out
}

// goTypeFromJSONType maps JSON schema types to Go types. Union types and
// location references decode through location.Reference.
func goTypeFromJSONType(prop string, details map[string]interface{}) string {
	switch t := details["type"].(type) {
	case string:
		switch t {
		case "string":
			return "string"
		case "integer":
			if strings.HasSuffix(prop, "Id") {
				return "int64"
			}
			return "int"
		case "number":
			return "float64"
		case "boolean":
			return "bool"
		case "object":
			return "map[string]interface{}"
		case "array":
			if items, ok := details["items"].(map[string]interface{}); ok && items["type"] == "string" {
				return "[]string"
			}
			return "[]interface{}"
		}
	case []interface{}:
		return "location.Reference"
	}
	return "interface{}"
}

// generateStructFields generates Go struct field definitions from schema
// properties, in name order.
func generateStructFields(schema map[string]interface{}) string {
	properties := schemaProperties(schema)
	required := requiredSet(schema)

	names := make([]string, 0, len(properties))
	for name := range properties {
		names = append(names, name)
	}
	sort.Strings(names)

	var fields []string
	for _, prop := range names {
		details, ok := properties[prop].(map[string]interface{})
		if !ok {
			continue
		}
		tag := prop
		if !required[prop] {
			tag += ",omitempty"
		}
		field := fmt.Sprintf("\t%s %s `json:\"%s\"`", fieldName(prop), goTypeFromJSONType(prop, details), tag)
		if desc, ok := details["description"].(string); ok && desc != "" {
			field += " // " + desc
		}
		fields = append(fields, field)
	}
	return strings.Join(fields, "\n")
}

// fieldName exports a camelCase property, keeping Go initialisms.
func fieldName(prop string) string {
	if prop == "" {
		return prop
	}
	name := strings.ToUpper(prop[:1]) + prop[1:]
	if strings.HasSuffix(name, "Id") {
		name = strings.TrimSuffix(name, "Id") + "ID"
	}
	return name
}

const configTemplate = `package {{ .PackageName }}

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: {{ timeoutExpr .Timeout }},
	}
}
`

const modelsTemplate = `package {{ .PackageName }}
{{ if .UsesReference }}
import "booking-workers/internal/location"
{{ end }}
type Input struct {
{{ .InputFields }}
}

type Output struct {
}
`

const handlerTemplate = `package {{ .PackageName }}

import (
	"context"
	"encoding/json"
	"fmt"

	"booking-workers/internal/common/errors"
	"booking-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "{{ .TaskType }}"
)

// Handler serves {{ .Name }}: {{ .Description }}
type Handler struct {
	config       *Config
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		errorHandler: errors.NewErrorHandler(log),
		logger:       log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		return h.failJob(client, job, errors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err)))
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.Execute(ctx, &input)
	if err != nil {
		return h.failJob(client, job, err)
	}
	return h.completeJob(client, job, output)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return nil, errors.NewInternalError(fmt.Errorf("%s is not implemented", TaskType))
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, variables interface{}) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(variables)
	if err != nil {
		return h.failJob(client, job, errors.NewInternalError(fmt.Errorf("encode output: %w", err)))
	}
	if _, err := cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{"error": err.Error()})
		return err
	}
	return nil
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, err error) error {
	h.errorHandler.HandleJobError(context.Background(), client, job, err)
	return err
}
`

const testTemplate = `package {{ .PackageName }}

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"booking-workers/internal/common/logger"
)

func TestHandler_Execute(t *testing.T) {
	handler := NewHandler(LoadConfig(), logger.NewTestLogger(t))

	_, err := handler.Execute(context.Background(), &Input{})
	assert.Error(t, err)
}
`

// timeoutExpr renders a registry timeout as a Go duration expression.
func timeoutExpr(timeout string) string {
	switch {
	case strings.HasSuffix(timeout, "ms"):
		return strings.TrimSuffix(timeout, "ms") + " * time.Millisecond"
	case strings.HasSuffix(timeout, "s"):
		return strings.TrimSuffix(timeout, "s") + " * time.Second"
	case strings.HasSuffix(timeout, "m"):
		return strings.TrimSuffix(timeout, "m") + " * time.Minute"
	default:
		return "30 * time.Second"
	}
}

// generate renders the worker scaffold for tool under outputDir and returns
// the written paths.
func generate(tool *registry.Tool, outputDir string) ([]string, error) {
	fields := generateStructFields(tool.InputSchema)
	data := WorkerData{
		Name:          tool.DisplayName,
		PackageName:   strings.ReplaceAll(tool.Name, "-", ""),
		TaskType:      tool.JobType(),
		Description:   tool.Description,
		Timeout:       tool.Timeout,
		InputFields:   fields,
		UsesReference: strings.Contains(fields, "location.Reference"),
	}

	workerDir := filepath.Join(outputDir, mapCategoryToDirectory(tool.Category), tool.Name)
	if err := os.MkdirAll(workerDir, 0755); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}

	funcMap := template.FuncMap{"timeoutExpr": timeoutExpr}
	templates := []struct{ file, body string }{
		{"config.go", configTemplate},
		{"models.go", modelsTemplate},
		{"handler.go", handlerTemplate},
		{"handler_test.go", testTemplate},
	}

	var written []string
	for _, t := range templates {
		tmpl, err := template.New(t.file).Funcs(funcMap).Parse(t.body)
		if err != nil {
			return written, fmt.Errorf("parse template %s: %w", t.file, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return written, fmt.Errorf("execute template %s: %w", t.file, err)
		}
		src, err := format.Source(buf.Bytes())
		if err != nil {
			return written, fmt.Errorf("format %s: %w", t.file, err)
		}

		path := filepath.Join(workerDir, t.file)
		if _, err := os.Stat(path); err == nil {
			return written, fmt.Errorf("%s already exists", path)
		}
		if err := os.WriteFile(path, src, 0644); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func main() {
	toolName := flag.String("tool", "", "Tool name from the registry (e.g., check-availability)")
	outputDir := flag.String("output", "./internal/workers/", "Output directory for the generated worker")
	registryPath := flag.String("registry", "configs/tools.json", "Path to the tool registry JSON file")
	flag.Parse()

	if *toolName == "" {
		fmt.Println("Usage: worker-generator --tool <name> --output <dir> [--registry <path>]")
		fmt.Println("\nExample:")
		fmt.Println("  go run cmd/tools/worker-generator/main.go --tool check-availability")
		os.Exit(1)
	}

	reg, err := registry.LoadRegistry(*registryPath)
	if err != nil {
		fmt.Printf("Error loading registry from %s: %v\n", *registryPath, err)
		os.Exit(1)
	}

	tool, err := reg.Find(*toolName)
	if err != nil {
		fmt.Printf("Tool '%s' not found in registry %s\n", *toolName, *registryPath)
		os.Exit(1)
	}

	written, err := generate(tool, *outputDir)
	for _, path := range written {
		fmt.Printf("✓ Generated %s\n", path)
	}
	if err != nil {
		fmt.Printf("Error generating worker: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nNext steps:\n")
	fmt.Printf("  1. Implement Execute in handler.go\n")
	fmt.Printf("  2. Fill in Output in models.go\n")
	fmt.Printf("  3. Register the worker in cmd/worker-manager/main.go\n")
	fmt.Printf("  4. Add configuration to configs/config.yaml\n")
}

// mapCategoryToDirectory maps registry categories to directory names
func mapCategoryToDirectory(category string) string {
	switch category {
	case "location", "locations":
		return "locations"
	case "booking", "bookings", "availability":
		return "bookings"
	case "":
		return "misc"
	default:
		return strings.ToLower(category)
	}
}
