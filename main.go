package main

import "github.com/crystaldolphin/chanrelay/cmd"

func main() {
	cmd.Execute()
}
