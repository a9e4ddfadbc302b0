package main

import "github.com/KaramelBytes/sheetloom-cli/cmd"

func main() {
	cmd.Execute()
}
