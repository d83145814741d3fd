package main

import "gen-machineconf/internal/cli"

func main() {
	cli.Execute()
}
