// Package config resolves run settings that come from outside the command
// line: credentials from viper and the environment, and the label
// documents that declare a repository's desired labels.
package config

import (
	"os"

	"github.com/spf13/viper"
)

// Environment variables consulted for the access token, in order.
var tokenEnvVars = []string{"GITHUB_ACCESS_TOKEN", "GITHUB_TOKEN"}

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	osValue := os.Getenv(key)
	viperValue := viper.GetString(key)

	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}

// AccessToken returns the configured access token: the access_token key
// (flag, LABELSYNC_ACCESS_TOKEN or config file) first, then the GitHub
// token environment variables. It returns "" when none is set.
func AccessToken() string {
	if token := viper.GetString("access_token"); token != "" {
		return token
	}
	for _, name := range tokenEnvVars {
		if token := GetString(name); token != "" {
			return token
		}
	}
	return ""
}
