package main

import "github.com/rsrinivasan/hackradar/internal/cli"

func main() {
	cli.Execute()
}
