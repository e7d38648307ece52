package main

import "github.com/Alijeyrad/nutriguard_backend/cmd"

func main() {
	cmd.Execute()
}
