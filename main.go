package main

import "github.com/Manu343726/encgen/cmd"

func main() {
	cmd.Execute()
}
