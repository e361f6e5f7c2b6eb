package main

import "github.com/uleam/dictado/cmd"

func main() {
	cmd.Execute()
}
