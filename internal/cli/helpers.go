package cli

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/mesh-intelligence/wbedit/internal/render"
	dm "github.com/mesh-intelligence/wbedit/pkg/datamodel"
	"github.com/mesh-intelligence/wbedit/pkg/store"
)

// colored reports whether output to w should use colors: --no-color and
// the color config key win; otherwise only terminals get colors.
func (a *app) colored(w io.Writer) bool {
	if a.flags.noColor {
		return false
	}
	switch a.config.GetString(cfgKeyColor) {
	case colorAlways:
		return true
	case colorNever:
		return false
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func (a *app) printer(w io.Writer) *render.Printer {
	return render.NewPrinter(w, a.colored(w))
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// classify attaches an exit code to err: bad input and missing records are
// the user's to fix, anything else is a system failure.
func classify(what string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, dm.ErrInvalidArgument),
		errors.Is(err, dm.ErrMissingArgument),
		errors.Is(err, store.ErrNotFound),
		errors.Is(err, store.ErrUnsupportedDocument),
		errors.Is(err, fs.ErrNotExist):
		return userError("%s: %w", what, err)
	default:
		return sysError("%s: %w", what, err)
	}
}
