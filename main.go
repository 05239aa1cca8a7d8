package main

import "github.com/km-arc/go-ioc/cmd"

func main() {
	cmd.Execute()
}
