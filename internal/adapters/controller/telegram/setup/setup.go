package setup

import (
	"github.com/spf13/viper"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/middleware"

	"github.com/randomgive/giveaway-bot/cmd/bot"
	"github.com/randomgive/giveaway-bot/internal/adapters/controller/telegram/handlers/giveaway"
	"github.com/randomgive/giveaway-bot/internal/adapters/controller/telegram/handlers/middlewares"
	"github.com/randomgive/giveaway-bot/internal/adapters/controller/telegram/handlers/start"
)

func Setup(b *bot.Bot) {
	// Pre-setup and global middlewares
	middle := middlewares.New(b)
	startHandler := start.New(b)
	giveawayHandler := giveaway.New(b)

	if viper.GetBool("settings.debug") {
		b.Use(middleware.Logger())
	}
	b.Use(b.Layout.Middleware(viper.GetString("settings.locale")))
	b.Use(middleware.AutoRespond())
	b.Handle(tele.OnText, b.Input.Handler())
	b.Use(middle.ResetInputOnBack)

	// Entrant-facing callbacks, pressed under channel posts and in the
	// subscribe prompt.
	b.Handle(b.Layout.Callback("participate"), giveawayHandler.Participate)
	b.Handle(b.Layout.Callback("checksub"), giveawayHandler.CheckSubscription)

	b.Handle("/start", startHandler.Start)
	b.Handle("/help", startHandler.Help)

	// Organizer commands only make sense in a private session.
	organizer := b.Group()
	organizer.Use(middle.PrivateChatOnly)
	organizer.Handle("/new_giveaway", giveawayHandler.NewGiveaway)
	organizer.Handle("/cancel_giveaway", giveawayHandler.CancelGiveaway)
}
