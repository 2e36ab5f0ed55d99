package main

import "clipfit/cmd"

func main() {
	cmd.Execute()
}
