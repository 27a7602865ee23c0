package setup

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type console struct {
	out io.Writer

	title lipgloss.Style
	step  lipgloss.Style
	good  lipgloss.Style
	warn  lipgloss.Style
	fail  lipgloss.Style
}

func newConsole(out io.Writer) *console {
	r := lipgloss.NewRenderer(out)
	return &console{
		out:   out,
		title: r.NewStyle().Bold(true),
		step:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("36")),
		good:  r.NewStyle().Foreground(lipgloss.Color("42")),
		warn:  r.NewStyle().Foreground(lipgloss.Color("214")),
		fail:  r.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

func (c *console) banner(title string) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintf(c.out, "\n%s\n  %s\n%s\n", rule, c.title.Render(title), rule)
}

func (c *console) header(title string) {
	rule := strings.Repeat("-", 50)
	fmt.Fprintf(c.out, "\n%s\n%s\n%s\n", rule, c.step.Render(title), rule)
}

func (c *console) println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

func (c *console) printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}

func (c *console) status(msg string) {
	fmt.Fprintf(c.out, "\n📌 %s\n", msg)
}

func (c *console) success(msg string) {
	fmt.Fprintf(c.out, "\n✓ %s\n", c.good.Render(msg))
}

func (c *console) warning(msg string) {
	fmt.Fprintf(c.out, "\n⚠️  %s\n", c.warn.Render(msg))
}

func (c *console) failure(msg string) {
	fmt.Fprintf(c.out, "\n❌ %s\n", c.fail.Render(msg))
}

func (c *console) list(items ...string) {
	for i, item := range items {
		fmt.Fprintf(c.out, "%d. %s\n", i+1, item)
	}
}

// Preview returns the first 20 characters of key followed by "...".
func Preview(key string) string {
	const n = 20
	r := []rune(key)
	if len(r) > n {
		r = r[:n]
	}
	return string(r) + "..."
}

// ReportCancelled prints the message shown when the user aborts the run.
func ReportCancelled(out io.Writer) {
	fmt.Fprintln(out)
	newConsole(out).warning("Setup cancelled by user")
}

// ReportFailure prints err together with a hint to finish by hand.
func ReportFailure(out io.Writer, err error) {
	c := newConsole(out)
	c.failure("Error during setup: " + err.Error())
	c.println("\nPlease try again or set up credentials manually")
}

func ReportSuccess(out io.Writer) {
	fmt.Fprintf(out, "\n🎉 %s\n", newConsole(out).good.Render("Supabase setup completed successfully!"))
}
