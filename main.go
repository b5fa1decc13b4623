package main

import (
	"log"

	"github.com/LambdaTest/axon/cmd"
)

func main() {
	if err := cmd.RootCommand().Execute(); err != nil {
		log.Fatalf("error in executing command: %+v", err)
	}
}
