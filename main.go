package main

import "github.com/oshokin/spotisaver/cmd"

func main() {
	cmd.Execute()
}
