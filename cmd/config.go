package main

import "time"

type Config struct {
	Host              string        `env:"HOST,default=localhost"`
	Port              int           `env:"PORT,default=8080"`
	LogLevel          string        `env:"LOG_LEVEL,default=INFO"`
	BadgerFilepath    string        `env:"BADGER_FILEPATH,required=true"`
	OwnerScope        string        `env:"OWNER_SCOPE,default=session"`
	GatewayMode       string        `env:"GATEWAY_MODE,default=stub"`
	TwilioAccountSID  string        `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken   string        `env:"TWILIO_AUTH_TOKEN"`
	TwilioPhoneNumber string        `env:"TWILIO_PHONE_NUMBER"`
	FrontendOrigin    string        `env:"FRONTEND_ORIGIN"`
	CookieSecure      bool          `env:"COOKIE_SECURE,default=false"`
	AuthTokenSecret   string        `env:"AUTH_TOKEN_SECRET"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=336h"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
}
