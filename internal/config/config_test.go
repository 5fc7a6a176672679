package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8080",
		},
		Database: DatabaseConfig{
			Host:   "localhost",
			User:   "test",
			DBName: "test",
		},
		Mail: MailConfig{
			SendTimeout: 10 * time.Second,
			MaxWorkers:  8,
		},
		Scheduler: SchedulerConfig{
			Enabled:         true,
			IntervalMinutes: 5,
		},
	}
}

func TestConfigValidation(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	// Missing server port
	invalid := validConfig()
	invalid.Server.Port = ""
	assert.Error(t, invalid.Validate())

	// Missing database settings
	invalid = validConfig()
	invalid.Database.User = ""
	assert.Error(t, invalid.Validate())

	// Enabled mail requires OAuth2 credentials
	invalid = validConfig()
	invalid.Mail.Enabled = true
	assert.Error(t, invalid.Validate())

	enabled := validConfig()
	enabled.Mail.Enabled = true
	enabled.Mail.ClientID = "id"
	enabled.Mail.ClientSecret = "secret"
	enabled.Mail.RefreshToken = "refresh"
	enabled.Mail.FromEmail = "news@example.org"
	assert.NoError(t, enabled.Validate())

	// Worker pool and timeout bounds
	invalid = validConfig()
	invalid.Mail.MaxWorkers = 0
	assert.Error(t, invalid.Validate())

	invalid = validConfig()
	invalid.Mail.SendTimeout = 0
	assert.Error(t, invalid.Validate())

	// Enabled scheduler requires a positive interval
	invalid = validConfig()
	invalid.Scheduler.IntervalMinutes = 0
	assert.Error(t, invalid.Validate())
}

func TestDatabaseDSN(t *testing.T) {
	config := DatabaseConfig{
		Host:     "localhost",
		Port:     3306,
		User:     "testuser",
		Password: "testpass",
		DBName:   "testdb",
	}

	dsn := config.GetDSN()
	expected := "testuser:testpass@tcp(localhost:3306)/testdb?charset=utf8mb4&parseTime=True&loc=Local"
	assert.Equal(t, expected, dsn)
}
