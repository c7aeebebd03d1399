package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the messaging service needs at boot. Values come
// from config/pedoderma.yaml when present, with PEDODERMA_* env overrides.
type Config struct {
	Server Server
	Mongo  Mongo
	JWT    JWT
}

type Server struct {
	Addr         string
	AllowOrigin  string
	WriteTimeout time.Duration
}

type Mongo struct {
	URI      string
	Database string
	// InMemory swaps the Mongo store for the in-process one. Dev/test only:
	// messages do not survive a restart.
	InMemory bool
}

type JWT struct {
	Secret string
	TTL    time.Duration
}

func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("pedoderma")
	v.SetConfigType("yaml")
	v.AddConfigPath("config")
	v.AddConfigPath(".")

	v.SetEnvPrefix("pedoderma")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", ":5000")
	v.SetDefault("server.alloworigin", "http://localhost:5173")
	v.SetDefault("server.writetimeout", 5*time.Second)
	v.SetDefault("mongo.uri", "mongodb://127.0.0.1:27017")
	v.SetDefault("mongo.database", "pedoderma")
	v.SetDefault("mongo.inmemory", false)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.ttl", 2*time.Hour)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// defaults + env only
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
