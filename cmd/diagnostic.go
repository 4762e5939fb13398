// Copyright © 2024 The ELPS authors

package cmd

import (
	"io"

	"github.com/luthersystems/minilisp/diagnostic"
)

// renderError renders err with diagnostic formatting.  When the failure
// happened while loading a file a hint to rerun with tracing is appended.
func renderError(w io.Writer, mode diagnostic.ColorMode, err error, sourceFile string) {
	d := diagnostic.FromError(err)
	if sourceFile != "" {
		d.Notes = append(d.Notes, "try: minilisp run --log-level debug "+sourceFile)
	}
	r := &diagnostic.Renderer{Color: mode}
	_ = r.Render(w, d)
}
