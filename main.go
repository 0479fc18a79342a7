package main

import "github.com/athenahq/athena/cmd"

func main() {
	cmd.Execute()
}
