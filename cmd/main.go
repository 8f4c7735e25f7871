package main

import (
	"log"

	_ "time/tzdata"

	"github.com/randomgive/giveaway-bot/cmd/bot"
	"github.com/randomgive/giveaway-bot/internal/adapters/config"
	setupBot "github.com/randomgive/giveaway-bot/internal/adapters/controller/telegram/setup"
)

func main() {
	cfg := config.Get()
	b, err := bot.New(cfg)
	if err != nil {
		log.Panic(err)
	}

	setupBot.Setup(b)

	b.Start()
}
