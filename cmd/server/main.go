package main

import (
	"context"
	"log"

	"github.com/knowhowcafe/auth/internal/server"
	"github.com/knowhowcafe/auth/internal/server/config"
)

func main() {

	ctx := context.Background()
	server.LoadEnv()
	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
