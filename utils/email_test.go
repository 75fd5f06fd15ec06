package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdminMailerPortFallback(t *testing.T) {
	assert.Equal(t, 587, NewAdminMailer("smtp.example.com", "", "u", "p", "from@x", "to@x").Port)
	assert.Equal(t, 587, NewAdminMailer("smtp.example.com", "not-a-port", "u", "p", "from@x", "to@x").Port)
	assert.Equal(t, 2525, NewAdminMailer("smtp.example.com", "2525", "u", "p", "from@x", "to@x").Port)
}

func TestAdminMailerNotConfigured(t *testing.T) {
	tests := []struct {
		name   string
		mailer *AdminMailer
	}{
		{"missing host", NewAdminMailer("", "587", "u", "p", "from@x", "to@x")},
		{"missing recipient", NewAdminMailer("smtp.example.com", "587", "u", "p", "from@x", "")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.mailer.Send(context.Background(), "hello")
			assert.True(t, IsConfigurationError(err))
		})
	}
}
