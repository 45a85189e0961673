package main

import "smin/cmd"

func main() {
	cmd.Execute()
}
