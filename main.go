package main

import "github.com/centavo-zero/backend/internal/cmd"

func main() {
	cmd.Execute()
}
