package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		valueFlags []string
		boolFlags  []string
		want       []string
	}{
		{
			name:       "short flag with separate value",
			args:       []string{"-c", "conf.json", "-a", "localhost"},
			valueFlags: []string{"-c", "-config"},
			want:       []string{"-c", "conf.json"},
		},
		{
			name:       "long flag with equals",
			args:       []string{"-config=alt.json", "-a", "localhost"},
			valueFlags: []string{"-c", "-config"},
			want:       []string{"-config=alt.json"},
		},
		{
			name:       "unknown flags ignored",
			args:       []string{"-x", "1", "--y=2", "positional"},
			valueFlags: []string{"-c"},
			want:       []string{},
		},
		{
			name:       "value flag at end is kept as-is",
			args:       []string{"-c"},
			valueFlags: []string{"-c"},
			want:       []string{"-c"},
		},
		{
			name:       "value flag followed by another flag",
			args:       []string{"-c", "-notvalue"},
			valueFlags: []string{"-c"},
			want:       []string{"-c"},
		},
		{
			name:       "bool flag does not swallow the next argument",
			args:       []string{"-r", "positional", "-s", "secret"},
			valueFlags: []string{"-s"},
			boolFlags:  []string{"-r"},
			want:       []string{"-r", "-s", "secret"},
		},
		{
			name:       "bool flag with inline value",
			args:       []string{"-r=false", "-s", "secret"},
			valueFlags: []string{"-s"},
			boolFlags:  []string{"-r"},
			want:       []string{"-r=false", "-s", "secret"},
		},
		{
			name:       "repeated flag is preserved in order",
			args:       []string{"-c", "one.json", "-c", "two.json"},
			valueFlags: []string{"-c"},
			want:       []string{"-c", "one.json", "-c", "two.json"},
		},
		{
			name:       "empty args",
			args:       []string{},
			valueFlags: []string{"-c"},
			want:       []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.valueFlags, tt.boolFlags...)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("short -c with value", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "/path/short.json"}
		assert.Equal(t, "/path/short.json", ConfigFileFlag())
	})

	t.Run("long -config with value", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", "/path/long.json"}
		assert.Equal(t, "/path/long.json", ConfigFileFlag())
	})

	t.Run("unknown flags are ignored", func(t *testing.T) {
		os.Args = []string{"testbin", "-x", "1", "-a", ":8080"}
		assert.Empty(t, ConfigFileFlag())
	})

	t.Run("last wins", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "/path/1.json", "-config", "/path/2.json"}
		assert.Equal(t, "/path/2.json", ConfigFileFlag())
	})
}
