// SPDX-License-Identifier: MPL-2.0

package help

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/invowk/prun/internal/executor"
	"github.com/invowk/prun/internal/params"
	"github.com/invowk/prun/pkg/profile"
)

// Glamour style names accepted by WithStyle besides the standard ones.
const (
	StyleAuto  = "auto"
	StylePlain = "notty"
)

type (
	// Printer writes help to an io.Writer.
	Printer struct {
		out   io.Writer
		style string
		width int
	}

	// Option configures a Printer.
	Option func(*Printer)
)

var _ executor.Help = (*Printer)(nil)

// WithStyle selects the glamour style for command help: "auto", "dark",
// "light" or "notty".
func WithStyle(style string) Option {
	return func(p *Printer) { p.style = style }
}

// WithWidth sets the word wrap width of command help.
func WithWidth(width int) Option {
	return func(p *Printer) { p.width = width }
}

// NewPrinter returns a Printer writing to out.
func NewPrinter(out io.Writer, opts ...Option) *Printer {
	p := &Printer{out: out, style: StyleAuto, width: 80}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// List prints the commands of prof with their descriptions.
func (p *Printer) List(prof *profile.Profile) {
	fmt.Fprintln(p.out, headerStyle.Render(fmt.Sprintf("Commands in profile %s", prof.Name)))
	if len(prof.Commands) == 0 {
		fmt.Fprintln(p.out, legendStyle.Render("  (no commands defined)"))
		return
	}
	fmt.Fprintln(p.out)

	width := 0
	for _, cmd := range prof.Commands {
		width = max(width, len(cmd.Name))
	}
	for _, cmd := range prof.Commands {
		line := "  " + nameStyle.Render(fmt.Sprintf("%-*s", width, cmd.Name))
		if desc := cmd.Description(); desc != "" {
			line += "  " + descStyle.Render(desc)
		}
		fmt.Fprintln(p.out, line)
	}
}

// Describe prints the help of cmd rendered from Markdown.
func (p *Printer) Describe(prof *profile.Profile, cmd *profile.Command) {
	md := Markdown(prof, cmd)
	rendered, err := p.render(md)
	if err != nil {
		rendered = md
	}
	fmt.Fprint(p.out, rendered)
}

func (p *Printer) render(md string) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(p.width)}
	if p.style == StyleAuto || p.style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(p.style))
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return renderer.Render(md)
}

// Markdown returns the help document of cmd. Hidden variables are left out.
func Markdown(prof *profile.Profile, cmd *profile.Command) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", cmd.Name)
	if prof != nil && prof.Name != profile.DefaultProfile {
		fmt.Fprintf(&sb, "Profile `%s`\n\n", prof.Name)
	}
	if cmd.Help != nil && strings.TrimSpace(cmd.Help.Text) != "" {
		sb.WriteString(strings.TrimSpace(cmd.Help.Text))
		sb.WriteString("\n\n")
	}

	var usage []string
	for _, v := range cmd.Variables() {
		if v.Arg && !v.Hide {
			usage = append(usage, "<"+v.Name+">")
		}
	}
	fmt.Fprintf(&sb, "```\nprun run %s\n```\n\n", strings.Join(append([]string{cmd.Name}, usage...), " "))

	var vars []profile.Variable
	for _, v := range cmd.Variables() {
		if !v.Hide {
			vars = append(vars, v)
		}
	}
	if len(vars) == 0 {
		return sb.String()
	}

	sb.WriteString("## Parameters\n\n")
	for _, v := range vars {
		fmt.Fprintf(&sb, "- `--%s`", v.Name)
		if v.Text != "" {
			fmt.Fprintf(&sb, ": %s", v.Text)
		}
		var notes []string
		if v.Arg {
			notes = append(notes, "positional")
		}
		if v.Default != nil {
			notes = append(notes, fmt.Sprintf("default `%s`", *v.Default))
		}
		if len(v.Options) > 0 {
			notes = append(notes, "one of `"+strings.Join(v.Options, "`, `")+"`")
		}
		if v.Encrypted {
			notes = append(notes, fmt.Sprintf("pass encrypted as `--%s`", params.EncryptedName(v.Name)))
		}
		if len(notes) > 0 {
			fmt.Fprintf(&sb, " (%s)", strings.Join(notes, "; "))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
