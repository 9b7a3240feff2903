package main

import "github.com/jsphweid/rebeam/cmd"

func main() {
	cmd.Execute()
}
