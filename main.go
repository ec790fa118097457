package main

import "flightline/cmd"

func main() {
	cmd.Execute()
}
