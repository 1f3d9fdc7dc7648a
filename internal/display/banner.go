package display

import (
	"fmt"
	"io"

	"github.com/backmassage/mergetweets/internal/term"
)

const banner = ` __  __                     _____                _
|  \/  | ___ _ __ __ _  ___|_   _|_      _____  ___| |_ ___
| |\/| |/ _ \ '__/ _` + "`" + ` |/ _ \ | | \ \ /\ / / _ \/ _ \ __/ __|
| |  | |  __/ | | (_| |  __/ | |  \ V  V /  __/  __/ |_\__ \
|_|  |_|\___|_|  \__, |\___| |_|   \_/\_/ \___|\___|\__|___/
                 |___/
`

// PrintBanner writes the ASCII art banner to w, in magenta when colors are enabled.
func PrintBanner(w io.Writer) {
	fmt.Fprintln(w, term.Magenta.Sprint(banner))
}
