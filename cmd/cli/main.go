package main

import "github.com/dondi-c/church-finder/cmd/cli/command"

func main() {
	command.Execute()
}
