package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const envPrefix = "CART"

type ServerConfig struct {
	Addr         string        `yaml:"addr" envconfig:"ADDR"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"writeTimeout" envconfig:"WRITE_TIMEOUT"`
}

type DatabaseConfig struct {
	Username string `yaml:"username" envconfig:"USERNAME"`
	Password string `yaml:"password" envconfig:"PASSWORD"`
	Host     string `yaml:"host" envconfig:"HOST"`
	Port     string `yaml:"port" envconfig:"PORT"`
	Database string `yaml:"database" envconfig:"DATABASE"`
	LogLevel string `yaml:"logLevel" envconfig:"LOG_LEVEL"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.Username,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

type RedisConfig struct {
	Addr       string        `yaml:"addr" envconfig:"ADDR"`
	Password   string        `yaml:"password" envconfig:"PASSWORD"`
	Database   int           `yaml:"database" envconfig:"DATABASE"`
	ProductTTL time.Duration `yaml:"productTTL" envconfig:"PRODUCT_TTL"`
}

type StorageConfig struct {
	// Driver selects every store: "mysql" (with redis product cache) or "memory".
	Driver string `yaml:"driver" envconfig:"DRIVER"`
	// SeedFile preloads products and shipping profiles for the memory driver.
	SeedFile string `yaml:"seedFile" envconfig:"SEED_FILE"`
}

type AuthConfig struct {
	PublicKeyPath  string        `yaml:"publicKeyPath" envconfig:"PUBLIC_KEY_PATH"`
	PrivateKeyPath string        `yaml:"privateKeyPath" envconfig:"PRIVATE_KEY_PATH"`
	TokenTTL       time.Duration `yaml:"tokenTTL" envconfig:"TOKEN_TTL"`
}

type LogConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL"`
	Format string `yaml:"format" envconfig:"FORMAT"`
}

type TracingConfig struct {
	Exporter    string `yaml:"exporter" envconfig:"EXPORTER"`
	Endpoint    string `yaml:"endpoint" envconfig:"ENDPOINT"`
	ServiceName string `yaml:"serviceName" envconfig:"SERVICE_NAME"`
}

type CartConfig struct {
	// Lock is "none", "local" or "redis".
	Lock    string        `yaml:"lock" envconfig:"LOCK"`
	LockTTL time.Duration `yaml:"lockTTL" envconfig:"LOCK_TTL"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Storage  StorageConfig  `yaml:"storage"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
	Tracing  TracingConfig  `yaml:"tracing"`
	Cart     CartConfig     `yaml:"cart"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:         ":3000",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{Host: "127.0.0.1", Port: "3306", LogLevel: "warn"},
		Redis:    RedisConfig{Addr: "127.0.0.1:6379", ProductTTL: 5 * time.Minute},
		Storage:  StorageConfig{Driver: "memory"},
		Auth: AuthConfig{
			PublicKeyPath:  "jwt/public_key.pem",
			PrivateKeyPath: "jwt/private_key.pem",
			TokenTTL:       time.Hour,
		},
		Log:     LogConfig{Level: "info", Format: "json"},
		Tracing: TracingConfig{Exporter: "none", ServiceName: "marketcart"},
		Cart:    CartConfig{Lock: "local", LockTTL: 10 * time.Second},
	}
}

// LoadConfig reads filename over the defaults, then applies CART_* overrides.
// A missing file is not an error.
func LoadConfig(filename string) (Config, error) {
	config := Default()

	file, err := os.Open(filename)
	switch {
	case err == nil:
		defer file.Close()
		decoder := yaml.NewDecoder(file)
		if err := decoder.Decode(&config); err != nil {
			return config, errors.Wrapf(err, "decode %s", filename)
		}
	case !os.IsNotExist(err):
		return config, errors.Wrapf(err, "open %s", filename)
	}

	if err := envconfig.Process(envPrefix, &config); err != nil {
		return config, errors.Wrap(err, "apply environment")
	}
	return config, config.Validate()
}

func (c Config) Validate() error {
	switch c.Storage.Driver {
	case "mysql", "memory":
	default:
		return errors.Errorf("config: unknown storage driver %q", c.Storage.Driver)
	}
	switch c.Cart.Lock {
	case "none", "local":
	case "redis":
		if c.Redis.Addr == "" {
			return errors.New("config: redis cart lock needs redis.addr")
		}
	default:
		return errors.Errorf("config: unknown cart lock %q", c.Cart.Lock)
	}
	switch c.Tracing.Exporter {
	case "none", "stdout":
	case "otlp":
		if c.Tracing.Endpoint == "" {
			return errors.New("config: otlp tracing needs tracing.endpoint")
		}
	default:
		return errors.Errorf("config: unknown tracing exporter %q", c.Tracing.Exporter)
	}
	if c.Server.Addr == "" {
		return errors.New("config: server.addr is required")
	}
	return nil
}

// UsesRedis reports whether any component needs a redis connection.
func (c Config) UsesRedis() bool {
	return c.Storage.Driver == "mysql" || c.Cart.Lock == "redis"
}
