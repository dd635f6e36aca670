package main

import "tempo/internal/cli"

func main() {
	cli.Execute()
}
