package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "short flag with separate value",
			args:    []string{"-s", "key", "-x", "1"},
			allowed: []string{"-s"},
			want:    []string{"-s", "key"},
		},
		{
			name:    "equals form",
			args:    []string{"-d=postgres://db", "-x", "1"},
			allowed: []string{"-d"},
			want:    []string{"-d=postgres://db"},
		},
		{
			name:    "unknown flags ignored",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-a"},
			want:    []string{},
		},
		{
			name:    "flag without value at end",
			args:    []string{"-a"},
			allowed: []string{"-a"},
			want:    []string{"-a"},
		},
		{
			name:    "next dash token is not a value",
			args:    []string{"-a", "-t", "20"},
			allowed: []string{"-a", "-t"},
			want:    []string{"-a", "-t", "20"},
		},
		{
			name:    "repeated flag kept in order",
			args:    []string{"-c", "one.json", "-c", "two.json"},
			allowed: []string{"-c"},
			want:    []string{"-c", "one.json", "-c", "two.json"},
		},
		{
			name:    "empty args",
			args:    []string{},
			allowed: []string{"-c"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestJSONConfigPath(t *testing.T) {
	t.Run("short -c", func(t *testing.T) {
		assert.Equal(t, "/etc/tk.json", JSONConfigPath([]string{"-c", "/etc/tk.json"}))
	})

	t.Run("long -config", func(t *testing.T) {
		assert.Equal(t, "/etc/tk.json", JSONConfigPath([]string{"-config", "/etc/tk.json", "-a", ":9000"}))
	})

	t.Run("absent", func(t *testing.T) {
		assert.Empty(t, JSONConfigPath([]string{"-a", ":9000"}))
	})

	t.Run("last wins", func(t *testing.T) {
		assert.Equal(t, "/2.json", JSONConfigPath([]string{"-c", "/1.json", "-config", "/2.json"}))
	})
}
