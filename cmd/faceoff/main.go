package main

import "github.com/faceoffgame/faceoff/internal/cli"

func main() {
	cli.Execute()
}
