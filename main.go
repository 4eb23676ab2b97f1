package main

import "github.com/freshwaterdesigns/freshwater-cdn/cmd"

func main() {
	cmd.Execute()
}
