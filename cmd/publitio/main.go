package main

import (
	"github.com/publitio/publitio-go/pkg/cmd"
)

func main() {
	cmd.Execute()
}
