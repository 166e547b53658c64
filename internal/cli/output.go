package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Output writes human-readable lines with color, or JSON when --json is set.
type Output struct {
	JSON bool

	out io.Writer
	err io.Writer

	green  *color.Color
	yellow *color.Color
	red    *color.Color
	gray   *color.Color
	bold   *color.Color
}

func newOutput(cmd *cobra.Command) *Output {
	return newOutputTo(cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func newOutputTo(out, errOut io.Writer) *Output {
	return &Output{
		JSON:   JSONOutput(),
		out:    out,
		err:    errOut,
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow),
		red:    color.New(color.FgRed),
		gray:   color.New(color.FgHiBlack),
		bold:   color.New(color.Bold),
	}
}

func (o *Output) Green(s string) string {
	return o.green.Sprint(s)
}

func (o *Output) Gray(s string) string {
	return o.gray.Sprint(s)
}

func (o *Output) Bold(s string) string {
	return o.bold.Sprint(s)
}

// Print writes a plain line. It is silent in JSON mode.
func (o *Output) Print(msg string) {
	if o.JSON {
		return
	}
	_, _ = fmt.Fprintln(o.out, msg)
}

// Success writes a green line. It is silent in JSON mode.
func (o *Output) Success(msg string) {
	if o.JSON {
		return
	}
	_, _ = fmt.Fprintln(o.out, o.Green(msg))
}

// Warn writes a yellow line to stderr.
func (o *Output) Warn(msg string) {
	_, _ = fmt.Fprintln(o.err, o.yellow.Sprint(msg))
}

// Error writes a red line to stderr.
func (o *Output) Error(msg string) {
	_, _ = fmt.Fprintln(o.err, o.red.Sprint(msg))
}

// EmitJSON writes v as indented JSON.
func (o *Output) EmitJSON(v any) error {
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Result reports a completed command: v as JSON, or msg as a success line.
func (o *Output) Result(msg string, v any) error {
	if o.JSON {
		return o.EmitJSON(v)
	}
	o.Success(msg)
	return nil
}

// Table provides a simple table formatter.
type Table struct {
	w *tabwriter.Writer
}

// NewTableWriter creates a table writing to out.
func NewTableWriter(out io.Writer, headers ...string) *Table {
	t := &Table{
		w: tabwriter.NewWriter(out, 0, 0, 2, ' ', 0),
	}
	if len(headers) > 0 {
		_, _ = t.w.Write([]byte(strings.Join(headers, "\t") + "\n"))
	}
	return t
}

// Row adds a row to the table.
func (t *Table) Row(values ...string) {
	_, _ = t.w.Write([]byte(strings.Join(values, "\t") + "\n"))
}

// Flush writes the table output.
func (t *Table) Flush() {
	_ = t.w.Flush()
}

// TruncateString truncates a string to maxLen runes, adding "..." if truncated.
func TruncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
