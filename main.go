package main

import "resultctl/cmd"

func main() {
	cmd.Execute()
}
