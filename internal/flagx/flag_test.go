package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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
			args:    []string{"-c", "conf.toml", "-d", "/tmp/data"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-c", "conf.toml"},
		},
		{
			name:    "equals form",
			args:    []string{"-config=alt.json", "-d", "/tmp"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-config=alt.json"},
		},
		{
			name:    "unknown flags and positionals ignored",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "flag without value at the end",
			args:    []string{"-c"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "next dash token is not a value",
			args:    []string{"-c", "-d"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "several allowed flags keep order",
			args:    []string{"-d", "/var/dayscribe", "-l", "debug", "-m", "x"},
			allowed: []string{"-d", "-l"},
			want:    []string{"-d", "/var/dayscribe", "-l", "debug"},
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

func TestConfigFileFlag(t *testing.T) {
	assert.Equal(t, "/p/short.json", ConfigFileFlag([]string{"-c", "/p/short.json"}))
	assert.Equal(t, "/p/long.toml", ConfigFileFlag([]string{"-config", "/p/long.toml"}))
	assert.Equal(t, "/p/2.json", ConfigFileFlag([]string{"-c", "/p/1.json", "-config", "/p/2.json"}))
	assert.Empty(t, ConfigFileFlag([]string{"-x", "1"}))
}

func TestConfigFile_EnvFallback(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Setenv(ConfigEnvVar, "/etc/dayscribe.toml")

	os.Args = []string{"dayscribe"}
	require.Equal(t, "/etc/dayscribe.toml", ConfigFile())

	os.Args = []string{"dayscribe", "-c", "/home/me/ds.json"}
	require.Equal(t, "/home/me/ds.json", ConfigFile())
}
