package main

import "github.com/notargets/boiling/cmd"

func main() {
	cmd.Execute()
}
