package main

import "nbacal/internal/cli"

func main() {
	cli.Execute()
}
