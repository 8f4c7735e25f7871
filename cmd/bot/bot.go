package bot

import (
	"sync"

	"github.com/nlypage/intele"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/layout"

	"github.com/randomgive/giveaway-bot/internal/adapters/config"
	"github.com/randomgive/giveaway-bot/internal/adapters/database/memory"
	"github.com/randomgive/giveaway-bot/internal/adapters/database/redis"
	"github.com/randomgive/giveaway-bot/internal/domain/service"
	"github.com/randomgive/giveaway-bot/pkg/logger"
	"github.com/randomgive/giveaway-bot/pkg/logger/types"
	"github.com/randomgive/giveaway-bot/pkg/scheduler"
)

type Bot struct {
	*tele.Bot
	Layout    *layout.Layout
	Redis     *redis.Client
	Logger    *types.Logger
	Input     *intele.InputManager
	Giveaways *service.GiveawayService
	Scheduler *scheduler.Scheduler
}

func New(config *config.Config) (*Bot, error) {
	lt, err := layout.New("telegram.yml")
	if err != nil {
		return nil, err
	}

	settings := lt.Settings()
	botLogger, err := logger.Named("bot")
	if err != nil {
		return nil, err
	}
	settings.OnError = func(err error, ctx tele.Context) {
		if ctx.Callback() == nil {
			botLogger.Errorf("(user: %d) | Error: %v", ctx.Sender().ID, err)
		} else {
			botLogger.Errorf("(user: %d) | unique: %s | Error: %v", ctx.Sender().ID, ctx.Callback().Unique, err)
		}
	}

	b, err := tele.NewBot(settings)
	if err != nil {
		return nil, err
	}

	if cmds := lt.Commands(); cmds != nil {
		if err = b.SetCommands(cmds); err != nil {
			return nil, err
		}
	}

	giveawayLogger, err := logger.Named("giveaway")
	if err != nil {
		return nil, err
	}

	locale := viper.GetString("settings.locale")
	timers := scheduler.New()
	engine := service.NewGiveawayService(
		memory.NewGiveawayStorage(),
		timers,
		service.NewMembershipService(b, giveawayLogger),
		service.NewNotifyService(b, lt, locale, giveawayLogger),
		giveawayLogger,
		viper.GetInt("settings.verify-workers"),
	)

	bot := &Bot{
		Bot:    b,
		Layout: lt,
		Redis:  config.Redis,
		Input: intele.NewInputManager(intele.InputOptions{
			Storage: config.Redis.States,
		}),
		Logger:    botLogger,
		Giveaways: engine,
		Scheduler: timers,
	}

	return bot, nil
}

func (b *Bot) Start() {
	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		logger.Log.Info("Bot starting")

		if viper.GetBool("settings.logging.log-to-channel") {
			notifyLogger, err := logger.Named("notify")
			if err != nil {
				logger.Log.Errorf("Failed to create notify logger: %v", err)
			} else {
				notifyService := service.NewNotifyService(b.Bot, b.Layout, viper.GetString("settings.locale"), notifyLogger)
				logHook, err := notifyService.LogHook(
					viper.GetInt64("settings.logging.channel-id"),
					viper.GetString("settings.logging.locale"),
					zapcore.Level(viper.GetInt("settings.logging.channel-log-level")),
				)
				if err != nil {
					logger.Log.Errorf("Failed to create notify log hook: %v", err)
				} else {
					logger.SetLogHook(logHook)
				}
			}
		}
		b.Bot.Start()
	}()

	wg.Wait()
}

// Stop shuts down polling and disarms every pending giveaway timer.
func (b *Bot) Stop() {
	b.Scheduler.Stop()
	b.Bot.Stop()
}
