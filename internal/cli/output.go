package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/aretw0/strata/internal/presentation/tui"
)

// Output formats accepted by the --format flag.
const (
	FormatAuto     = "auto"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// ResolveFormat turns "auto" into markdown on a terminal and JSON otherwise.
func ResolveFormat(format string, out io.Writer) (string, error) {
	switch format {
	case FormatMarkdown, FormatJSON:
		return format, nil
	case FormatAuto, "":
		if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return FormatMarkdown, nil
		}
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown format %q (expected auto, markdown or json)", format)
	}
}

// Print writes value as indented JSON, or markdown rendered through glamour.
func Print(out io.Writer, format string, markdown string, value any) error {
	format, err := ResolveFormat(format, out)
	if err != nil {
		return err
	}

	if format == FormatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	}

	rendered, err := tui.NewRenderer()(markdown)
	if err != nil {
		rendered = markdown
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}
