package main

import "github.com/prochat/prochat/cmd"

func main() {
	cmd.Execute()
}
