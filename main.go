package main

import "github.com/tranvictor/balancewatch/cmd"

func main() {
	cmd.Execute()
}
