package main

import "counter-terminal/cmd"

func main() {
	cmd.Execute()
}
