package config

import (
	"log"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/Astemirdum/library-records/library/internal/lending"
	"github.com/Astemirdum/library-records/pkg/kafka"
	"github.com/Astemirdum/library-records/pkg/logger"
	"github.com/Astemirdum/library-records/pkg/postgres"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"LIBRARY_HTTP_HOST" default:"0.0.0.0"`
	Port         string        `yaml:"port" envconfig:"LIBRARY_HTTP_PORT" default:"8000"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"10s"`
	WriteTimeout time.Duration `yaml:"writeTimeout" envconfig:"HTTP_WRITE"`
}

type Config struct {
	Server   HTTPServer     `yaml:"server"`
	Database postgres.DB    `yaml:"db"`
	Kafka    kafka.Config   `yaml:"kafka"`
	Log      logger.Log     `yaml:"log"`
	Lending  lending.Policy `yaml:"lending"`
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment once. Options set values the environment does not override.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		c, err := Load(ops...)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = c
	})
	return cfg
}

// Load reads a fresh config from environment.
func Load(ops ...Option) (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	for _, op := range ops {
		op(&c)
	}
	return &c, nil
}
