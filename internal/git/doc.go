// Package git provides a wrapper around the Git CLI commands used by
// grove. It handles clone, remote and gitconfig setup, and basic state
// inspection without depending on other internal packages.
package git
