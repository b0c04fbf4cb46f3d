package main

import "mccraft/cmd"

func main() {
	cmd.Execute()
}
