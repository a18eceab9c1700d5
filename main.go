package main

import "hootroot/cmd"

func main() {
	cmd.Execute()
}
