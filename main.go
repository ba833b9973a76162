package main

import "github.com/ngld/maze-tools/cmd"

func main() {
	cmd.Execute()
}
