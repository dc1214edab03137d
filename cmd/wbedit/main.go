// Command wbedit builds, merges and journals knowledge-base entity updates
// described by YAML edit scripts.
package main

import "github.com/mesh-intelligence/wbedit/internal/cli"

func main() {
	cli.Execute()
}
