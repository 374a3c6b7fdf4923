// Command palettes builds Tableau colour palettes from crowdsourced
// submissions.
package main

import "github.com/datafam/palettes/internal/cli"

func main() {
	cli.Execute()
}
