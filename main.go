package main

import (
	"os"

	"realestate/service"
)

func main() {
	os.Exit(service.Execute())
}
