package main

import "github.com/smartgain/reelgen/internal/cli"

func main() {
	cli.Main()
}
