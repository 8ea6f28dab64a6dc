package config

import (
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	Broker    BrokerConfig
	JWT       JWTConfig
	Scheduler SchedulerConfig
	Upload    UploadConfig
}

type AppConfig struct {
	Port           string
	Env            string
	Timezone       string
	AllowedOrigins string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	Schema   string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type BrokerConfig struct {
	Host     string
	Port     string
	User     string
	Password string
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

type SchedulerConfig struct {
	ReminderCron string
	ReportCron   string
}

type UploadConfig struct {
	Dir string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// .env is optional when everything comes from the environment
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, err
		}
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = time.Hour
	}

	config := &Config{
		App: AppConfig{
			Port:           withDefault(viper.GetString("APP_PORT"), "8000"),
			Env:            withDefault(viper.GetString("APP_ENV"), "development"),
			Timezone:       withDefault(viper.GetString("APP_TIMEZONE"), "Asia/Dhaka"),
			AllowedOrigins: withDefault(viper.GetString("APP_ALLOWED_ORIGINS"), "*"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
			Schema:   withDefault(viper.GetString("DB_SCHEMA"), "public"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Broker: BrokerConfig{
			Host:     viper.GetString("BROKER_HOST"),
			Port:     withDefault(viper.GetString("BROKER_PORT"), "5672"),
			User:     viper.GetString("BROKER_USER"),
			Password: viper.GetString("BROKER_PASSWORD"),
		},
		JWT: JWTConfig{
			Secret:       viper.GetString("JWT_SECRET"),
			AccessExpiry: accessExpiry,
		},
		Scheduler: SchedulerConfig{
			// The reminder beat ran every minute in production; kept until the
			// mail sender integration lands and the cadence is revisited.
			ReminderCron: withDefault(viper.GetString("REMINDER_CRON"), "* * * * *"),
			ReportCron:   withDefault(viper.GetString("REPORT_CRON"), "0 2 1 * *"),
		},
		Upload: UploadConfig{
			Dir: withDefault(viper.GetString("UPLOAD_DIR"), "static/uploads"),
		},
	}

	return config, nil
}

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
