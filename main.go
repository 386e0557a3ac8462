package main

import (
	"github.com/joho/godotenv"

	"github.com/Lumos-Labs-HQ/mockforge/cmd"
)

func main() {
	// Optional; absence of a .env file is not an error.
	_ = godotenv.Load()

	cmd.Execute()
}
