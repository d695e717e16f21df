package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[database]
dbname = "hms"

[registry]
url = "http://registry:8081"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "hms", cfg.Database.DBName)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, 30*time.Minute, cfg.Scheduling.SlotGranularity())
	assert.Equal(t, time.Minute, cfg.Scheduling.SlotsCacheTTL())

	open, close, err := cfg.Scheduling.StandardHours()
	require.NoError(t, err)
	assert.Equal(t, "08:00", open.String())
	assert.Equal(t, "22:00", close.String())
}

func TestLoad_OverridesValues(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db"
port = 6432
user = "u"
password = "p"
dbname = "hms"
sslmode = "require"

[redis]
addr = "redis:6379"

[registry]
url = "http://registry:8081"
timeout = 2

[scheduling]
standard_open_time = "09:00"
standard_close_time = "17:30"
slot_granularity_minutes = 20
timezone = "Europe/Moscow"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "host=db port=6432 user=u password=p dbname=hms sslmode=require", cfg.Database.DSN())
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 20*time.Minute, cfg.Scheduling.SlotGranularity())

	loc, err := cfg.Scheduling.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing dbname",
			content: "[registry]\nurl = \"http://r\"\n",
		},
		{
			name:    "missing registry",
			content: "[database]\ndbname = \"hms\"\n",
		},
		{
			name: "inverted standard hours",
			content: `
[database]
dbname = "hms"
[registry]
url = "http://r"
[scheduling]
standard_open_time = "18:00"
standard_close_time = "08:00"
`,
		},
		{
			name: "bad granularity",
			content: `
[database]
dbname = "hms"
[registry]
url = "http://r"
[scheduling]
slot_granularity_minutes = 0
`,
		},
		{
			name: "bad time format",
			content: `
[database]
dbname = "hms"
[registry]
url = "http://r"
[scheduling]
standard_open_time = "8am"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
