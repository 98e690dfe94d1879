package main

import "github.com/alexiusacademia/shoring/cmd"

func main() {
	cmd.Execute()
}
