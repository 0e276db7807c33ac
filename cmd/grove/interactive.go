package main

import (
	"fmt"
	"path"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	hintStyle     = lipgloss.NewStyle().Faint(true)
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// urlPrompt asks for a repository URL and previews the tree name it
// would produce. Names already present in taken are rejected. An empty
// submission is accepted and ends the prompt loop.
type urlPrompt struct {
	input   textinput.Model
	taken   map[string]bool
	errMsg  string
	done    bool
	aborted bool
}

func (m urlPrompt) Init() tea.Cmd {
	return textinput.Blink
}

func (m urlPrompt) validate() error {
	url := strings.TrimSpace(m.input.Value())
	if url == "" {
		return nil
	}
	name := treeNameFromURL(url)
	if name == "" || name == "." {
		return fmt.Errorf("cannot infer a tree name from the URL")
	}
	if m.taken[name] {
		return fmt.Errorf("tree %q is already added", name)
	}
	return nil
}

func (m urlPrompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			if err := m.validate(); err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			m.done = true
			return m, tea.Quit
		}
	}
	m.errMsg = ""
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m urlPrompt) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Git repository URL (empty to finish)") + "\n")
	b.WriteString(m.input.View() + "\n")
	if url := strings.TrimSpace(m.input.Value()); url != "" {
		if name := treeNameFromURL(url); name != "" && name != "." {
			b.WriteString(hintStyle.Render("tree: "+name) + "\n")
		}
	}
	if m.errMsg != "" {
		b.WriteString(errStyle.Render(m.errMsg) + "\n")
	}
	return b.String()
}

// promptRepoURL collects one repository URL. Returns "" when the user
// submits an empty line to finish.
func promptRepoURL(taken map[string]bool) (string, error) {
	ti := textinput.New()
	ti.Placeholder = "git@github.com:org/repo.git"
	ti.Focus()

	result, err := tea.NewProgram(urlPrompt{input: ti, taken: taken}).Run()
	if err != nil {
		return "", err
	}
	m := result.(urlPrompt)
	if m.aborted {
		return "", fmt.Errorf("user aborted")
	}
	return strings.TrimSpace(m.input.Value()), nil
}

// confirmPrompt is a yes/no question with a toggleable selection.
type confirmPrompt struct {
	question string
	yes      bool
	done     bool
	aborted  bool
}

func (m confirmPrompt) Init() tea.Cmd {
	return nil
}

func (m confirmPrompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "esc":
		m.aborted = true
		return m, tea.Quit
	case "y", "Y":
		m.yes = true
		m.done = true
		return m, tea.Quit
	case "n", "N":
		m.yes = false
		m.done = true
		return m, tea.Quit
	case "enter":
		m.done = true
		return m, tea.Quit
	case "left", "right", "tab", "h", "l":
		m.yes = !m.yes
	}
	return m, nil
}

func (m confirmPrompt) View() string {
	if m.done {
		return ""
	}
	yes, no := " yes ", " no "
	if m.yes {
		yes = selectedStyle.Render(yes)
	} else {
		no = selectedStyle.Render(no)
	}
	return fmt.Sprintf("%s %s/%s\n", titleStyle.Render(m.question), yes, no)
}

func promptConfirm(question string) (bool, error) {
	result, err := tea.NewProgram(confirmPrompt{question: question}).Run()
	if err != nil {
		return false, err
	}
	m := result.(confirmPrompt)
	if m.aborted {
		return false, fmt.Errorf("user aborted")
	}
	return m.yes, nil
}

// treeNameFromURL extracts a tree name from a Git URL.
// Handles both SSH (git@host:org/repo.git) and HTTPS (https://host/org/repo.git).
func treeNameFromURL(url string) string {
	url = strings.TrimRight(url, "/")

	// SSH format: git@github.com:org/repo.git
	if idx := strings.LastIndex(url, ":"); idx != -1 && !strings.Contains(url, "://") {
		url = url[idx+1:]
	}

	name := path.Base(url)
	return strings.TrimSuffix(name, ".git")
}
