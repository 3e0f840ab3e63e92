package main

import "github.com/strichware/bardec/cmd/bardec/cmd"

func main() {
	cmd.Execute()
}
