// mlrun runs an OCaml source file through the ocaml toplevel and shows the
// result, optionally re-running it on every save.
package main

import (
	"os"

	"github.com/hupe1980/mlrun/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
