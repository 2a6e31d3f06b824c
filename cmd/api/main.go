package main

import "authtools/internal/app"

func main() {
	app.Run()
}
