// internal/config/config.go
package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // "postgres" または "sqlite"
	URL    string `mapstructure:"url"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	FrontendURL string `mapstructure:"frontend_url"`
	// 進捗バーの目標値
	ProgressTarget int `mapstructure:"progress_target"`
	// 到達時に通知する既知字数
	Milestones []int `mapstructure:"milestones"`
}

type JWTConfig struct {
	SecretKey      string        `mapstructure:"secret_key"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
}

type AuthConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	MagicLinkTTL time.Duration `mapstructure:"magic_link_ttl"`
}

type MailerConfig struct {
	Type string `mapstructure:"type"` // "log", "smtp", "ses"
}

type SMTPConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	From string `mapstructure:"from"`
}

type SESConfig struct {
	Region          string `mapstructure:"region"`
	From            string `mapstructure:"from"`
	AuthType        string `mapstructure:"auth_type"` // "static_credentials" または "iam_role"
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

type RedisConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

type LocalConfig struct {
	// デバイスローカルストアの保存先
	DataDir string `mapstructure:"data_dir"`
}

type DatasetConfig struct {
	JSONPath string `mapstructure:"json_path"`
	CSVPath  string `mapstructure:"csv_path"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	CORS     CORSConfig     `mapstructure:"cors"`
	App      AppConfig      `mapstructure:"app"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Mailer   MailerConfig   `mapstructure:"mailer"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
	SES      SESConfig      `mapstructure:"ses"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Local    LocalConfig    `mapstructure:"local"`
	Dataset  DatasetConfig  `mapstructure:"dataset"`
}

var Cfg Config

func LoadConfig(path string) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath(".")

	// APP_DATABASE_URL のように接頭辞 + ドット区切りをアンダースコアに
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.BindEnv("auth.enabled", "AUTH_ENABLED")
	v.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")
	v.BindEnv("database.url", "DATABASE_URL")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	applyDefaults(&cfg)

	// auth.enabled は明示されていなければ有効
	if !v.IsSet("auth.enabled") {
		log.Println("Auth enabled flag not set, defaulting to true (enabled)")
		cfg.Auth.Enabled = DefaultAuthEnabled
	}

	Cfg = cfg

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Database Driver: %s", Cfg.Database.Driver)
	log.Printf("Auth Enabled: %t", Cfg.Auth.Enabled)

	return nil
}

// applyDefaults は未設定の項目にデフォルト値を入れる
func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		log.Printf("Server port not set, using default '%s'", DefaultServerPort)
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = DefaultDatabaseDriver
	}
	if cfg.Database.URL == "" {
		log.Println("Warning: Database URL is not set in config.")
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.App.Name == "" {
		cfg.App.Name = AppName
	}
	if cfg.App.ProgressTarget <= 0 {
		cfg.App.ProgressTarget = DefaultProgressTarget
	}
	if len(cfg.App.Milestones) == 0 {
		cfg.App.Milestones = append([]int(nil), DefaultMilestones...)
	}
	if cfg.JWT.AccessTokenTTL <= 0 {
		cfg.JWT.AccessTokenTTL = DefaultAccessTokenTTL
	}
	if cfg.JWT.SecretKey == "" {
		log.Println("Warning: JWT secret key is not set. Remote sign-in will not work.")
	}
	if cfg.Auth.MagicLinkTTL <= 0 {
		cfg.Auth.MagicLinkTTL = DefaultMagicLinkTTL
	}
	if cfg.Mailer.Type == "" {
		cfg.Mailer.Type = DefaultMailerType
	}
	if cfg.Local.DataDir == "" {
		cfg.Local.DataDir = DefaultLocalDataDir
	}
	if cfg.Dataset.JSONPath == "" {
		cfg.Dataset.JSONPath = DefaultDatasetJSONPath
	}
	if len(cfg.CORS.AllowedMethods) == 0 {
		cfg.CORS.AllowedMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	}
	if len(cfg.CORS.AllowedHeaders) == 0 {
		cfg.CORS.AllowedHeaders = []string{"Accept", "Authorization", "Content-Type", DeviceIDHeader}
	}
}
