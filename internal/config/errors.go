package config

import "fmt"

// ConfigurationError reports malformed or missing required structure, such
// as a graft pointing at a nonexistent file. It aborts the whole load.
type ConfigurationError struct {
	Path   string // owning configuration document
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("configuration error: %s", e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// NewConfigurationError creates a ConfigurationError for the given document.
func NewConfigurationError(path, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Path: path, Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError reports an explicitly referenced entity that does not
// exist, such as "worktree: <missing>" or an unknown garden name.
type NotFoundError struct {
	Kind string // "tree", "garden", "group", "template", "graft"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

// NewNotFoundError creates a NotFoundError for the given entity.
func NewNotFoundError(kind, name string) *NotFoundError {
	return &NotFoundError{Kind: kind, Name: name}
}
