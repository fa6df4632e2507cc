package main

import "sapcli/cmd"

func main() {
	cmd.Execute()
}
