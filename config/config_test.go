package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	LoadConfig()

	assert.Equal(t, "3001", AppConfig.AppPort)
	assert.Equal(t, "development", AppConfig.Env)
	assert.Equal(t, 1, AppConfig.AppointmentDurationHours)
	assert.Equal(t, 9, AppConfig.OpeningHour)
	assert.Equal(t, 18, AppConfig.ClosingHour)
	assert.Equal(t, 30, AppConfig.TimeSlotInterval)
	assert.Equal(t, "Africa/Tunis", AppConfig.TimeZone)
	assert.Equal(t, "primary", AppConfig.GoogleCalendarID)
	assert.Equal(t, 3599, AppConfig.GoogleTokenLifetime)
	assert.Equal(t, "token.json", AppConfig.TokenFile)
	assert.Equal(t, "smtp.gmail.com", AppConfig.EmailHost)
	assert.Equal(t, 587, AppConfig.EmailPort)
}

func TestLoadConfig_DentistEmailFallsBackToSender(t *testing.T) {
	t.Setenv("EMAIL_USER", "clinic@gmail.com")
	LoadConfig()
	assert.Equal(t, "clinic@gmail.com", AppConfig.DentistEmail)
}

func TestLoadConfig_DentistEmailLastResort(t *testing.T) {
	t.Setenv("EMAIL_USER", "")
	t.Setenv("DENTIST_EMAIL", "")
	LoadConfig()
	assert.Equal(t, "dentist@example.com", AppConfig.DentistEmail)
}

func TestIsProduction(t *testing.T) {
	t.Setenv("ENV", "production")
	LoadConfig()
	assert.True(t, IsProduction())

	t.Setenv("ENV", "development")
	LoadConfig()
	assert.False(t, IsProduction())
}
