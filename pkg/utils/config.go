package utils

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Email     EmailConfig
	Code      CodeConfig
	Stripe    StripeConfig
	Snowflake SnowflakeConfig
}

type AppConfig struct {
	Name       string
	Port       string
	Debug      bool
	LogPath    string
	BackendURL string
	ClientURL  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type JWTConfig struct {
	Secret       string
	CookieName   string
	CookieMaxAge int // milliseconds, same unit the storefront uses
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type CodeConfig struct {
	Length                    int
	VerificationExpiryMinutes int
	SecurityExpiryMinutes     int
}

type StripeConfig struct {
	SecretKey string
	Currency  string
}

type SnowflakeConfig struct {
	Node int64
}

func LoadConfig() (*Config, error) {
	// .env is optional, real deployments pass plain environment variables
	_ = godotenv.Load()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "woo-com-server")
	viper.SetDefault("PORT", "5000")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("BACKEND_URL", "http://localhost:5000/")
	viper.SetDefault("CLIENT_URL", "http://localhost:3000")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("JWT_COOKIE_NAME", "token")
	viper.SetDefault("JWT_COOKIE_MAX_AGE", 57600000)
	viper.SetDefault("CODE_LENGTH", 6)
	viper.SetDefault("VERIFICATION_EXPIRY_MINUTES", 5)
	viper.SetDefault("SECURITY_CODE_EXPIRY_MINUTES", 5)
	viper.SetDefault("STRIPE_CURRENCY", "usd")
	viper.SetDefault("SNOWFLAKE_NODE", 1)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:       viper.GetString("APP_NAME"),
			Port:       viper.GetString("PORT"),
			Debug:      viper.GetBool("DEBUG"),
			LogPath:    viper.GetString("LOG_PATH"),
			BackendURL: viper.GetString("BACKEND_URL"),
			ClientURL:  viper.GetString("CLIENT_URL"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret:       viper.GetString("ACCESS_TOKEN"),
			CookieName:   viper.GetString("JWT_COOKIE_NAME"),
			CookieMaxAge: viper.GetInt("JWT_COOKIE_MAX_AGE"),
		},
		Email: EmailConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("EMAIL_FROM"),
		},
		Code: CodeConfig{
			Length:                    viper.GetInt("CODE_LENGTH"),
			VerificationExpiryMinutes: viper.GetInt("VERIFICATION_EXPIRY_MINUTES"),
			SecurityExpiryMinutes:     viper.GetInt("SECURITY_CODE_EXPIRY_MINUTES"),
		},
		Stripe: StripeConfig{
			SecretKey: viper.GetString("STRIPE_SECRET_KEY"),
			Currency:  viper.GetString("STRIPE_CURRENCY"),
		},
		Snowflake: SnowflakeConfig{
			Node: viper.GetInt64("SNOWFLAKE_NODE"),
		},
	}

	if config.JWT.Secret == "" {
		return nil, errors.New("ACCESS_TOKEN is required")
	}

	return config, nil
}
