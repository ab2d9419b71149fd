package main

import "psyhub_backend/internal/app"

func main() {
	app.Run()
}
