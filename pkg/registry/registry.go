// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	return &reg, nil
}

// Find returns the activity registered for taskType.
func (r *ActivityRegistry) Find(taskType string) (*Activity, bool) {
	for i := range r.Activities {
		if r.Activities[i].TaskType == taskType {
			return &r.Activities[i], true
		}
	}
	return nil, false
}

// Validate checks that task types are unique and every timeout parses.
func (r *ActivityRegistry) Validate() error {
	seen := make(map[string]bool, len(r.Activities))
	for _, a := range r.Activities {
		if a.TaskType == "" {
			return fmt.Errorf("activity %q has no taskType", a.ID)
		}
		if seen[a.TaskType] {
			return fmt.Errorf("taskType %q registered twice", a.TaskType)
		}
		seen[a.TaskType] = true

		if a.Timeout != "" {
			if _, err := time.ParseDuration(a.Timeout); err != nil {
				return fmt.Errorf("activity %q: invalid timeout %q", a.ID, a.Timeout)
			}
		}
	}
	return nil
}

// Missing lists the task types that are not registered.
func (r *ActivityRegistry) Missing(taskTypes []string) []string {
	var out []string
	for _, t := range taskTypes {
		if _, ok := r.Find(t); !ok {
			out = append(out, t)
		}
	}
	return out
}
