package main

import "github.com/MeKo-Tech/benchkit/cmd/bench/cmd"

func main() {
	cmd.Execute()
}
