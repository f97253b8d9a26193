package main

import "teamboard/cmd"

func main() {
	cmd.Execute()
}
