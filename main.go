package main

import "github.com/pantryhq/pantry/cmd"

func main() {
	cmd.Execute()
}
