// Package config loads server configuration from yaml and environment.
package config

import (
	"flag"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr            string `yaml:"address" env:"LISTEN_ADDR" env-default:":8080"`
	ShutdownTimeout int    `yaml:"shutdown_timeout" env-default:"5"` // seconds
}

type Engine struct {
	// DepthLimit caps the levels served per side on the API; 0 = all.
	DepthLimit int `yaml:"depth_limit" env-default:"25"`
	// PoolSize preallocates order objects for the hot path.
	PoolSize int `yaml:"pool_size" env-default:"4096"`
}

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"production"`
	HTTPServer `yaml:"http_server"`
	Engine     Engine `yaml:"engine"`
}

// MustLoad reads the config file named by CONFIG_PATH or -config and
// exits on failure. With neither set, defaults apply.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flagPath := flag.String("config", "", "path to config file")
		flag.Parse()
		configPath = *flagPath
	}

	var cfg Config
	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("Unable to load config from env: %s", err.Error())
		}
		return &cfg
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("Config file does not exist: %s", configPath)
	}
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("Unable to load config: %s", err.Error())
	}
	return &cfg
}
