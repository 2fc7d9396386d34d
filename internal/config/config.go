package config

import (
	"os"
	"path"

	"gopkg.in/yaml.v2"

	"github.com/kaiwachat/kaiwa/internal/domain"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	ListenAddr       string `yaml:"listen_addr"`
	BridgeListenAddr string `yaml:"bridge_listen_addr"`
	ConverterURL     string `yaml:"converter_url"`
	MediaRootPath    string `yaml:"media_root_path"`

	MaxFileCount           int      `yaml:"max_file_count"`
	MaxFileSizeBytes       int64    `yaml:"max_file_size_bytes"`
	MaxTotalAttachmentSize int64    `yaml:"max_total_attachment_size"`
	AcceptedKinds          []string `yaml:"accepted_kinds"`

	MetadataIndexEnabled bool `yaml:"metadata_index_enabled"`

	LogLevel string `yaml:"log_level"`
	LogJSON  bool   `yaml:"log_json"`
}

type Private struct {
	Pg Pg `yaml:"pg"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

// DefaultLimit builds the limit spec used when a request carries none.
func (c *Config) DefaultLimit() domain.LimitSpec {
	return domain.LimitSpec{
		MaxFileCount:     c.Public.MaxFileCount,
		MaxFileSizeBytes: c.Public.MaxFileSizeBytes,
		AcceptedKinds:    c.Public.AcceptedKinds,
	}
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	return &Config{public, private}
}
