// internal/pkg/bootstrap/config.go
package bootstrap

import (
	"os"
	"sync/atomic"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config 聚合了服务运行所需的全部配置。
// 配置文件为 YAML，个别字段可以被环境变量覆盖（见 Init）。
type Config struct {
	App struct {
		Name string `yaml:"name"`
		Port int    `yaml:"port"`
	} `yaml:"app"`

	Infra struct {
		Mysql struct {
			DSN string `yaml:"dsn"`
		} `yaml:"mysql"`
		Redis struct {
			Addr string `yaml:"addr"`
		} `yaml:"redis"`
		Kafka struct {
			Brokers    []string `yaml:"brokers"`
			OrderTopic string   `yaml:"order_topic"`
		} `yaml:"kafka"`
		Jaeger struct {
			Endpoint string `yaml:"endpoint"`
		} `yaml:"jaeger"`
	} `yaml:"infra"`
}

var currentConfig atomic.Pointer[Config]

// Init 读取配置文件并缓存为当前配置。
// 路径默认为 configs/config.yaml，可通过 CONFIG_PATH 覆盖。
func Init() error {
	path := getEnv("CONFIG_PATH", "configs/config.yaml")
	cfg, err := loadConfig(path)
	if err != nil {
		return err
	}
	currentConfig.Store(cfg)
	return nil
}

// GetCurrentConfig 返回当前生效的配置。必须先调用 Init。
func GetCurrentConfig() *Config {
	cfg := currentConfig.Load()
	if cfg == nil {
		panic("bootstrap: config accessed before Init")
	}
	return cfg
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config file %s", path)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "parse config yaml")
	}

	// 环境变量覆盖，便于容器化部署时不重打配置文件
	if dsn := os.Getenv("MYSQL_DSN"); dsn != "" {
		cfg.Infra.Mysql.DSN = dsn
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Infra.Redis.Addr = addr
	}
	if endpoint := os.Getenv("JAEGER_ENDPOINT"); endpoint != "" {
		cfg.Infra.Jaeger.Endpoint = endpoint
	}

	return &cfg, nil
}

// getEnv 是一个内部辅助函数，从环境变量中读取配置。
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
