package main

import "github.com/sadopc/punchclock/cmd"

func main() {
	cmd.Execute()
}
