package config

import (
	"github.com/curioswitch/go-curiostack/config"
)

type Authorization struct {
	// EmailsCSV is a comma-separated list of emails allowed to access
	// the API.
	EmailsCSV string `koanf:"emailscsv"`
}

type Chat struct {
	// Provider selects the chat model backend, either "gemini" or
	// "openai". Defaults to "gemini".
	Provider string `koanf:"provider"`
}

type Firebase struct {
	// WebAPIKey is the Firebase web API key used for password sign-in
	// against the Identity Toolkit REST API.
	WebAPIKey string `koanf:"webapikey"`

	// DatabaseURL is the realtime database URL, e.g.
	// https://chef-web-dev-default-rtdb.firebaseio.com. Defaults to the
	// project's default database.
	DatabaseURL string `koanf:"databaseurl"`
}

type Config struct {
	config.Common

	// Authorization is the configuration for the email allow-list.
	Authorization Authorization `koanf:"authorization"`

	// Chat is the configuration for the chat model backend.
	Chat Chat `koanf:"chat"`

	// Firebase is the configuration for the Firebase project.
	Firebase Firebase `koanf:"firebase"`
}
