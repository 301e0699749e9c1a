package config

import (
	"flag"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

type Config struct {
	// Адрес на котором запустится сервер
	ServerAddress string `env:"SERVER_ADDRESS"`
	// Базовый адрес результирующей короткой ссылки
	BaseURL *url.URL `env:"BASE_URL"`
	// DSN постгреса. Если пуст, используется sqlite
	DatabaseDSN string `env:"DATABASE_DSN"`
	// Путь к файлу sqlite
	SQLitePath string `env:"SQLITE_PATH" envDefault:"shortlinks.db"`
	// Адрес redis для лимитера. Если пуст, лимитер выключен
	RedisDSN string `env:"REDIS_DSN"`
	// Соль кодека хешей. Смена соли инвалидирует все выданные хеши
	HashSalt string `env:"HASHIDS_SALT" envDefault:"dev-only-salt"`
	// Минимальная длина хеша
	HashMinLength int `env:"HASH_MIN_LENGTH" envDefault:"6"`
	// Базовый адрес SSO API
	SSOAPIURL string `env:"SSO_API_URL" envDefault:"https://api.florgon.com/v1"`
	// Лимит запросов на клиента в окне
	RateLimitRequests int64 `env:"RATE_LIMIT_REQUESTS" envDefault:"10"`
	// Длина окна лимитера
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
}

func LoadConfig() (*Config, error) {
	var flagsConfig, envConfig Config

	if err := env.Parse(&envConfig); err != nil {
		return nil, errors.Wrap(err, "parse ENV config error")
	}

	loadFlags(&flagsConfig)

	return mergeConfig(&envConfig, &flagsConfig), nil
}

// MustLoadConfig вызывает панику если конфигурацию собрать не удалось.
func MustLoadConfig() *Config {
	conf, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	return conf
}

// loadFlags парсит флаги командной строки.
func loadFlags(flagsConfig *Config) {
	flag.StringVar(&flagsConfig.ServerAddress, "a", "localhost:8080", "Адрес сервера")
	flag.StringVar(&flagsConfig.DatabaseDSN, "d", "", "DSN постгреса")

	bDesc := "Базовый адрес результирующей короткой ссылки"
	flag.Func("b", bDesc, func(rawURL string) error {
		parsedURL, err := url.ParseRequestURI(rawURL)
		if err != nil {
			return errors.Wrap(err, "failed to parse base url")
		}

		// Новый инстанс отсекает Path и Query если они заданы в базовом урле.
		flagsConfig.BaseURL = &url.URL{
			Scheme: parsedURL.Scheme,
			Host:   parsedURL.Host,
		}
		return nil
	})

	flag.Parse()
}

// mergeConfig сливает структуры для env и флагов. Env имеет приоритет.
func mergeConfig(envConfig, flagsConfig *Config) *Config {
	merged := *envConfig
	if merged.ServerAddress == "" {
		merged.ServerAddress = flagsConfig.ServerAddress
	}
	if merged.BaseURL == nil {
		merged.BaseURL = flagsConfig.BaseURL
	}
	if merged.DatabaseDSN == "" {
		merged.DatabaseDSN = flagsConfig.DatabaseDSN
	}
	return &merged
}
