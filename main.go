package main

import (
	"os"

	"github.com/yuvaraj18181818-cloud/Hire-AI/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
