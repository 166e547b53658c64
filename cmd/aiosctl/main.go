package main

import "github.com/tessro/aiosctl/internal/cli"

func main() {
	cli.Execute()
}
