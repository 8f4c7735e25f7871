package config

import (
	"os"

	"github.com/spf13/viper"

	"github.com/randomgive/giveaway-bot/internal/adapters/database/redis"
	"github.com/randomgive/giveaway-bot/internal/domain/utils/location"
	"github.com/randomgive/giveaway-bot/pkg/logger"
)

type Config struct {
	Redis *redis.Client
}

func initConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		panic(err)
	}

	if err := os.Setenv("BOT_TOKEN", viper.GetString("bot.token")); err != nil {
		panic(err)
	}
}

func Get() *Config {
	initConfig()

	err := logger.Init(logger.Config{
		Debug:        viper.GetBool("settings.debug"),
		TimeLocation: location.Location(),
		LogToFile:    viper.GetBool("settings.log-to-file"),
		LogsDir:      viper.GetString("settings.logs-dir"),
	})
	if err != nil {
		panic(err)
	}

	redisClient, err := redis.New(redis.Options{
		Host:     viper.GetString("service.redis.host"),
		Port:     viper.GetString("service.redis.port"),
		Password: viper.GetString("service.redis.password"),
	})
	if err != nil {
		logger.Log.Panicf("Failed to connect to redis: %v", err)
	}
	logger.Log.Info("Successfully connected to redis")

	return &Config{
		Redis: redisClient,
	}
}
