package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`
	// Secret signs the browser session cookie.
	Secret string `yaml:"secret" json:"secret"`
	// SessionIdle is the idle TTL in seconds before a browser session's
	// view state is swept.
	SessionIdle int `yaml:"session_idle" json:"session_idle"`
}

type BackendConfig struct {
	BaseURL string `yaml:"baseurl" json:"baseurl"`
	// Timeout is the per-request timeout in seconds.
	Timeout int `yaml:"timeout" json:"timeout"`
}

type LoggerConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System  SysConfig     `yaml:"system" json:"system"`
	Web     WebConfig     `yaml:"web" json:"web"`
	Backend BackendConfig `yaml:"backend" json:"backend"`
	Logger  LoggerConfig  `yaml:"logger" json:"logger"`
}

var DefaultAppConfig = AppConfig{
	System: SysConfig{
		Appid:    "medshop",
		Location: "Asia/Jakarta",
		Workdir:  "/var/medshop",
		Debug:    false,
	},
	Web: WebConfig{
		Host:        "0.0.0.0",
		Port:        1828,
		Secret:      "9b6de5cc-medshop-0769-1828-secret",
		SessionIdle: 3600,
	},
	Backend: BackendConfig{
		BaseURL: "http://127.0.0.1:5000/api",
		Timeout: 15,
	},
	Logger: LoggerConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/medshop/medshop.log",
	},
}

func setEnvValue(name string, f func(v string)) {
	if v, ok := os.LookupEnv(name); ok {
		f(v)
	}
}

// LoadConfig reads the yaml config file when present and applies
// environment overrides on top. A missing file yields defaults.
func LoadConfig(cfile string) *AppConfig {
	cfg := DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, &cfg)
		}
	}

	setEnvValue("MEDSHOP_SYSTEM_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvValue("MEDSHOP_SYSTEM_DEBUG", func(v string) { cfg.System.Debug = cast.ToBool(v) })
	setEnvValue("MEDSHOP_WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvValue("MEDSHOP_WEB_PORT", func(v string) { cfg.Web.Port = cast.ToInt(v) })
	setEnvValue("MEDSHOP_WEB_SECRET", func(v string) { cfg.Web.Secret = v })
	setEnvValue("MEDSHOP_WEB_SESSION_IDLE", func(v string) { cfg.Web.SessionIdle = cast.ToInt(v) })
	setEnvValue("MEDSHOP_BACKEND_BASEURL", func(v string) { cfg.Backend.BaseURL = v })
	setEnvValue("MEDSHOP_BACKEND_TIMEOUT", func(v string) { cfg.Backend.Timeout = cast.ToInt(v) })
	setEnvValue("MEDSHOP_LOGGER_MODE", func(v string) { cfg.Logger.Mode = v })
	setEnvValue("MEDSHOP_LOGGER_FILE_ENABLE", func(v string) { cfg.Logger.FileEnable = cast.ToBool(v) })

	if cfg.Logger.Filename == "" {
		cfg.Logger.Filename = filepath.Join(cfg.System.Workdir, "medshop.log")
	}
	return &cfg
}
