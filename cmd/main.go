package main

import (
	"log"

	"docverify/internal/app"
)

func main() {
	app, err := app.InitApp()
	if err != nil {
		log.Fatal("can't init app ", err)
	}

	app.Run()
}
