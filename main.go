package main

import (
	cmd "github.com/NextSpark-js/nextspark-sub000/cmd/router"
	"github.com/NextSpark-js/nextspark-sub000/internal"
)

var log = internal.GetLogger()

func main() {
	log.Info("Starting intent router")
	cmd.Execute()
}
