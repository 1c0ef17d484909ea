package main

import "github.com/awray/streakcard/cmd"

func main() {
	cmd.Execute()
}
