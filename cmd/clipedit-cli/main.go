package main

import "clipedit/cmd/clipedit-cli/cmd"

func main() {
	cmd.Execute()
}
