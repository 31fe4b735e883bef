package main

import "github.com/en-tropyc/blueshift/internal/cli"

func main() {
	cli.Execute()
}
