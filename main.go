package main

import "github.com/alexiusacademia/gowst/cmd"

func main() {
	cmd.Execute()
}
