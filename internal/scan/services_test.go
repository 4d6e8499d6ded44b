package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServiceName(t *testing.T) {
	tests := []struct {
		name     string
		port     int
		expected string
	}{
		{"ssh", 22, "SSH"},
		{"http", 80, "HTTP"},
		{"https", 443, "HTTPS"},
		{"postgres", 5432, "PostgreSQL"},
		{"redis", 6379, "Redis"},
		{"mongodb", 27017, "MongoDB"},
		{"http alt", 8080, "HTTP-Alt"},
		{"elasticsearch", 9200, "Elasticsearch"},
		{"unknown high port", 54321, "Unknown"},
		{"unknown low port", 2, "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ServiceName(tt.port))
		})
	}
}

func TestServiceNameIsPure(t *testing.T) {
	// Repeated lookups must not differ.
	for i := 0; i < 3; i++ {
		assert.Equal(t, "MySQL", ServiceName(3306))
		assert.Equal(t, "Unknown", ServiceName(0))
	}
}
