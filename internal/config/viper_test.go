package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestAccessToken(t *testing.T) {
	t.Cleanup(viper.Reset)

	t.Setenv("GITHUB_ACCESS_TOKEN", "")
	t.Setenv("GITHUB_TOKEN", "")
	viper.Reset()
	assert.Equal(t, "", AccessToken())

	t.Setenv("GITHUB_TOKEN", "from-actions")
	assert.Equal(t, "from-actions", AccessToken())

	t.Setenv("GITHUB_ACCESS_TOKEN", "from-env")
	assert.Equal(t, "from-env", AccessToken())

	viper.Set("access_token", "from-flag")
	assert.Equal(t, "from-flag", AccessToken())
}
