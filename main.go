package main

import "github.com/osoko/erpdeck/cmd"

func main() {
	cmd.Execute()
}
