package main

import "github.com/abawan7/quantum-entanglement-and-decoherence-simulator/cmd"

func main() {
	cmd.Execute()
}
