package main

import "github.com/bodul/xpuzzle/cmd"

func main() {
	cmd.Execute()
}
