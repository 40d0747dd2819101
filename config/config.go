package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	FrontendURL       string `mapstructure:"FRONTEND_URL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Clinic and booking configuration.
	DentistEmail             string `mapstructure:"DENTIST_EMAIL"`
	AppointmentDurationHours int    `mapstructure:"APPOINTMENT_DURATION_HOURS"`
	OpeningHour              int    `mapstructure:"OPENING_HOUR"`
	ClosingHour              int    `mapstructure:"CLOSING_HOUR"`
	TimeSlotInterval         int    `mapstructure:"TIME_SLOT_INTERVAL"`
	ClinicLocation           string `mapstructure:"CLINIC_LOCATION"`
	ClinicName               string `mapstructure:"CLINIC_NAME"`
	TimeZone                 string `mapstructure:"TIMEZONE"`

	// Google OAuth / Calendar configuration.
	GoogleClientID             string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret         string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURI          string `mapstructure:"GOOGLE_REDIRECT_URI"`
	GoogleAccessToken          string `mapstructure:"GOOGLE_ACCESS_TOKEN"`
	GoogleRefreshToken         string `mapstructure:"GOOGLE_REFRESH_TOKEN"`
	GoogleAccessTokenExpiresIn int    `mapstructure:"GOOGLE_ACCESS_TOKEN_EXPIRES_IN"`
	GoogleCalendarID           string `mapstructure:"GOOGLE_CALENDAR_ID"`
	GoogleTokenLifetime        int    `mapstructure:"GOOGLE_TOKEN_LIFETIME_SECONDS"`
	TokenFile                  string `mapstructure:"TOKEN_FILE"`

	// Email notification configuration. Leaving EMAIL_PASSWORD empty
	// disables notifications without being an error.
	EmailHost     string `mapstructure:"EMAIL_HOST"`
	EmailPort     int    `mapstructure:"EMAIL_PORT"`
	EmailUser     string `mapstructure:"EMAIL_USER"`
	EmailPassword string `mapstructure:"EMAIL_PASSWORD"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "3001")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("FRONTEND_URL", "http://localhost:8080")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)

	viper.SetDefault("DENTIST_EMAIL", "")
	viper.SetDefault("APPOINTMENT_DURATION_HOURS", 1)
	viper.SetDefault("OPENING_HOUR", 9)
	viper.SetDefault("CLOSING_HOUR", 18)
	viper.SetDefault("TIME_SLOT_INTERVAL", 30)
	viper.SetDefault("CLINIC_LOCATION", "Ariana, Cité ghazela, Tunisie")
	viper.SetDefault("CLINIC_NAME", "Adhhak")
	viper.SetDefault("TIMEZONE", "Africa/Tunis")

	viper.SetDefault("GOOGLE_REDIRECT_URI", "http://localhost")
	viper.SetDefault("GOOGLE_CALENDAR_ID", "primary")
	// Lifetime assumed for refresh responses that report none. Google
	// typically grants 3599 seconds; providers may change this.
	viper.SetDefault("GOOGLE_TOKEN_LIFETIME_SECONDS", 3599)
	viper.SetDefault("TOKEN_FILE", "token.json")

	viper.SetDefault("EMAIL_HOST", "smtp.gmail.com")
	viper.SetDefault("EMAIL_PORT", 587)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Notifications go to the sending address by default, so a minimal
	// setup only has to configure EMAIL_USER.
	if AppConfig.DentistEmail == "" {
		AppConfig.DentistEmail = AppConfig.EmailUser
	}
	if AppConfig.DentistEmail == "" {
		AppConfig.DentistEmail = "dentist@example.com"
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
