package ui

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"

	"docsearch/internal/render"
)

// Pager shows long text: the page behind an activated result, or the key reference
type Pager interface {
	Show(content string) tea.Cmd
}

// OVPager shows text in the ov pager, suspending the TUI meanwhile
type OVPager struct{}

// Show returns a command that runs ov over content
func (OVPager) Show(content string) tea.Cmd {
	return tea.Exec(&ovCommand{content: content}, func(err error) tea.Msg {
		return pagerDoneMsg{err: err}
	})
}

func pageText(e render.Entry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n%s\n\n", e.Title, e.URL)
	sb.WriteString(e.Page.Content)
	sb.WriteString("\n")
	return sb.String()
}

// ovCommand adapts an oviewer run to tea.ExecCommand.
// ov opens the terminal itself, so the provided streams are unused.
type ovCommand struct {
	content string
}

func (c *ovCommand) Run() error {
	root, err := oviewer.NewRoot(strings.NewReader(c.content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

func (c *ovCommand) SetStdin(io.Reader)  {}
func (c *ovCommand) SetStdout(io.Writer) {}
func (c *ovCommand) SetStderr(io.Writer) {}
