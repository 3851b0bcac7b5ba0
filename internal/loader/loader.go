// Package loader reads task sets from JSON or YAML files.
package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/joshharrison/taskflow/internal/task"
)

// Format is a task file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrNoTasks is returned when a document holds no task list.
var ErrNoTasks = errors.New("no task list found")

// FormatOf guesses the format from a file extension. Unknown extensions are
// treated as JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads the task file at path.
func Load(path string) ([]task.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tasks, err := Parse(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tasks, nil
}

// Parse decodes a task list. Documents may be a bare list or an object with
// a "tasks" list.
func Parse(data []byte, format Format) ([]task.Task, error) {
	switch format {
	case FormatYAML:
		return parseYAML(data)
	case FormatJSON:
		return parseJSON(data)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

func parseJSON(data []byte) ([]task.Task, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}
	list := gjson.ParseBytes(data)
	if !list.IsArray() {
		list = list.Get("tasks")
	}
	if !list.IsArray() {
		return nil, ErrNoTasks
	}

	var tasks []task.Task
	if err := json.Unmarshal([]byte(list.Raw), &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return tasks, nil
}

func parseYAML(data []byte) ([]task.Task, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, ErrNoTasks
	}

	list := root.Content[0]
	if list.Kind == yaml.MappingNode {
		list = field(list, "tasks")
	}
	if list == nil || list.Kind != yaml.SequenceNode {
		return nil, ErrNoTasks
	}

	var tasks []task.Task
	if err := list.Decode(&tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return tasks, nil
}

func field(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}
