package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const devRoot = "/dev/"

type Config struct {
	Logger  LoggerConf
	MaxLoad int
	Xfer    int
	Verbose bool
	Device  string
}

type LoggerConf struct {
	Level string
}

// NewConfig read configs and return Config
// values from flags override config file, config file overrides defaults.
// Config file is read from flag --config if exists
// else config.yaml is optional and searched in:
// - /etc/disk-cpu-load
// - $HOME/.disk-cpu-load
// - $PWD/configs
// - current dir.
func NewConfig(v *viper.Viper) (*Config, error) {
	v.SetDefault("logger.level", "INFO")
	v.SetDefault("maxLoad", 30)
	v.SetDefault("xfer", 4096)
	v.SetDefault("verbose", false)
	v.SetDefault("device", "/dev/sda")

	cfgFile := v.GetString("config")
	v.SetConfigType("yaml")
	if cfgFile != "" {
		// Если указан конфиг, то читаем только его и он обязан существовать
		if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
			return nil, fmt.Errorf("config %s not found", cfgFile)
		}
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed read config %s: %w", cfgFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("/etc/disk-cpu-load")
		v.AddConfigPath("$HOME/.disk-cpu-load")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed read config: %w", err)
			}
		}
	}

	config := &Config{
		Logger: LoggerConf{
			Level: v.GetString("logger.level"),
		},
		MaxLoad: v.GetInt("maxLoad"),
		Xfer:    v.GetInt("xfer"),
		Verbose: v.GetBool("verbose"),
		Device:  NormalizeDevice(v.GetString("device")),
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) Validate() error {
	if c.Xfer <= 0 {
		return fmt.Errorf("xfer must be positive, got %d", c.Xfer)
	}
	if c.MaxLoad < 0 {
		return fmt.Errorf("max-load must not be negative, got %d", c.MaxLoad)
	}
	if c.Device == "" {
		return fmt.Errorf("device is empty")
	}
	return nil
}

// NormalizeDevice добавляет /dev/ к имени устройства, если его там нет: sda -> /dev/sda.
func NormalizeDevice(name string) string {
	if name == "" || strings.Contains(name, "/dev") {
		return name
	}
	return devRoot + name
}
