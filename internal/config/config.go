package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"http"`

	MySQL struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"mysql"`

	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`

	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
		Topic   string   `mapstructure:"topic"`
	} `mapstructure:"kafka"`

	SMTP struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		Username string `mapstructure:"username"`
		Password string `mapstructure:"password"`
		From     string `mapstructure:"from"`
	} `mapstructure:"smtp"`

	Storage struct {
		Bucket    string `mapstructure:"bucket"`
		Region    string `mapstructure:"region"`
		PublicURL string `mapstructure:"public_url"`
	} `mapstructure:"storage"`

	Outbox struct {
		BatchSize int           `mapstructure:"batch_size"`
		Interval  time.Duration `mapstructure:"interval"`
	} `mapstructure:"outbox"`

	Reconciler struct {
		BatchSize int           `mapstructure:"batch_size"`
		Interval  time.Duration `mapstructure:"interval"`
	} `mapstructure:"reconciler"`
}

// Load reads config.yaml from the given path (or the working directory) and
// lets FORUM404_* environment variables override any key.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if path != "" {
		v.AddConfigPath(path)
	}
	v.AddConfigPath(".")

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("mysql.dsn", "forum:forum@tcp(127.0.0.1:3306)/forum404?charset=utf8mb4&parseTime=True")
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("kafka.topic", "forum.engagement")
	v.SetDefault("storage.bucket", "profile-pictures")
	v.SetDefault("storage.region", "us-west-1")
	v.SetDefault("outbox.batch_size", 200)
	v.SetDefault("outbox.interval", time.Second)
	v.SetDefault("reconciler.batch_size", 500)
	v.SetDefault("reconciler.interval", 5*time.Minute)

	v.SetEnvPrefix("FORUM404")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Missing file is fine; defaults plus env cover everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
