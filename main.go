package main

import "github.com/derickschaefer/biapi/cmd"

func main() {
	cmd.Execute()
}
