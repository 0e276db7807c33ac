// Package config defines the configuration model: variables, trees,
// templates, groups, gardens, grafts, and the arena of Configuration
// documents connected by graft edges.
package config
