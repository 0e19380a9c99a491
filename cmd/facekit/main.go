package main

import (
	"github.com/facekit/facekit/cmd/facekit/cmd"
)

func main() {
	cmd.Execute()
}
