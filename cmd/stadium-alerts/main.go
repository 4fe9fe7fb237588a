package main

import "github.com/pfrederiksen/stadium-alerts/internal/cli"

func main() {
	cli.Execute()
}
