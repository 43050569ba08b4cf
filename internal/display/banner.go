package display

import (
	"fmt"
	"io"

	"github.com/backmassage/sceneprep/internal/term"
)

// PrintBanner writes the ASCII art banner to w, in magenta when colors are on.
func PrintBanner(w io.Writer) {
	fmt.Fprint(w, term.Magenta)
	fmt.Fprint(w, `                              ___
  ___  ___ ___ _ __   ___ _ __ |  _ \ _ __ ___ _ __
 / __|/ __/ _ \ '_ \ / _ \ '_ \| |_) | '__/ _ \ '_ \
 \__ \ (_|  __/ | | |  __/ |_) |  __/| | |  __/ |_) |
 |___/\___\___|_| |_|\___| .__/|_|   |_|  \___| .__/
                         |_|                  |_|
`)
	if term.Enabled() {
		fmt.Fprintln(w, term.NC)
	}
}
