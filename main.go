package main

import "dsikea/cmd"

func main() {
	cmd.Execute()
}
