package target

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPort(t *testing.T) {
	tests := []struct {
		name         string
		target       Target
		expectedPort int
	}{
		{
			name: "with specified port",
			target: Target{
				Host: "example.com",
				User: "admin",
				Port: 2222,
			},
			expectedPort: 2222,
		},
		{
			name: "with default port",
			target: Target{
				Host: "example.com",
				User: "admin",
			},
			expectedPort: 22,
		},
		{
			name: "with zero port",
			target: Target{
				Host: "example.com",
				User: "admin",
				Port: 0,
			},
			expectedPort: 22,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedPort, tt.target.GetPort(), "GetPort() returned unexpected value")
		})
	}
}

func TestGetName(t *testing.T) {
	tests := []struct {
		name         string
		target       Target
		expectedName string
	}{
		{
			name: "with explicit name",
			target: Target{
				Name: "nas",
				Host: "192.168.1.10",
				User: "admin",
			},
			expectedName: "nas",
		},
		{
			name: "with default name (hostname)",
			target: Target{
				Host: "example.com",
				User: "admin",
			},
			expectedName: "example.com",
		},
		{
			name: "with empty name",
			target: Target{
				Name: "",
				Host: "192.168.1.101",
				User: "admin",
			},
			expectedName: "192.168.1.101",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedName, tt.target.GetName(), "GetName() returned unexpected value")
		})
	}
}

func TestAddress(t *testing.T) {
	tests := []struct {
		name     string
		target   Target
		expected string
	}{
		{
			name:     "default port",
			target:   Target{Host: "files.example.com", User: "backup"},
			expected: "files.example.com:22",
		},
		{
			name:     "custom port",
			target:   Target{Host: "10.0.0.5", User: "backup", Port: 2022},
			expected: "10.0.0.5:2022",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.target.Address())
		})
	}
}
