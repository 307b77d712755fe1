package main

import "varia/cmd/varia-cli/cmd"

func main() {
	cmd.Execute()
}
