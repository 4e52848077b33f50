package main

import "github.com/theirongolddev/gigdash/cmd"

func main() {
	cmd.Execute()
}
