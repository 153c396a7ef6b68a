package main

import "github.com/bosh-code/injectcss/cmd"

func main() {
	cmd.Execute()
}
