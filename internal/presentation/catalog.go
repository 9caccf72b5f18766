// Package presentation renders the navigator/workflow catalog for the CLI.
package presentation

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/aretw0/kestrel/pkg/domain"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Catalog describes what a registry currently exposes.
type Catalog struct {
	// Navigators maps each registered root to its workflow.
	Navigators map[string]domain.Workflow
}

// Markdown renders the catalog as a markdown document.
func (c Catalog) Markdown() string {
	var b strings.Builder
	b.WriteString("# Registered Navigators\n\n")

	if len(c.Navigators) == 0 {
		b.WriteString("_No navigators registered._\n")
		return b.String()
	}

	roots := make([]string, 0, len(c.Navigators))
	for root := range c.Navigators {
		roots = append(roots, root)
	}
	sort.Strings(roots)

	for _, root := range roots {
		wf := c.Navigators[root]
		fmt.Fprintf(&b, "## `%s`\n\n", root)
		for i, msg := range wf {
			marker := ""
			if msg.Nonstrict {
				marker = " _(nonstrict)_"
			}
			fmt.Fprintf(&b, "%d. **%s**%s\n", i+1, stepLabel(msg), marker)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Render produces terminal output for the catalog. On a TTY the markdown is
// styled with glamour; otherwise the raw markdown passes through so the
// output stays pipe-friendly.
func (c Catalog) Render() string {
	md := c.Markdown()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return md
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithColorProfile(termenv.ColorProfile()),
	)
	if err != nil {
		return md
	}

	styled, err := r.Render(md)
	if err != nil {
		return md
	}
	return styled
}

func stepLabel(msg *domain.Message) string {
	switch ref := msg.Service.(type) {
	case string:
		return ref
	case domain.Workflow:
		return fmt.Sprintf("sub-workflow (%d steps)", len(ref))
	default:
		return "inline service"
	}
}
