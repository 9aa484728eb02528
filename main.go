package main

import "github.com/KaramelBytes/skim-cli/cmd"

func main() {
	cmd.Execute()
}
