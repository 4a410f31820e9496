package main

import "github.com/quatton/portfolio/apps/strikecloud/cmd"

func main() {
	cmd.Execute()
}
