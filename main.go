package main

import "github.com/kamusis/fibula-cli/cmd"

func main() {
	cmd.Execute()
}
