package main

import "github.com/voxscreen/voxscreen/cmd"

func main() {
	cmd.Execute()
}
