package main

import "license-audit/internal/cli"

func main() {
	cli.Execute()
}
