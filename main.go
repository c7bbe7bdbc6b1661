package main

import "github.com/rnwolfe/fitdiary/cmd"

func main() {
	cmd.Execute()
}
