package main

import "github.com/cachehub/cachehub/cmd"

func main() {
	cmd.Execute()
}
