package main

import "github.com/oshokin/cia-forge/cmd/cia-forge/cmd"

func main() {
	cmd.Execute()
}
