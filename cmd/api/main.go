package main

import "org-site-backend/internal/app"

func main() {
	app.Run()
}
