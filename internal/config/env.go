package config

import (
	"os"
	"strings"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	GatewayBaseURL string
	GatewaySecret  string
	CallbackURL    string
	Currency       string
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))

	return Env{
		AppAddr: appAddr,
		GinMode: ginMode,

		DBUser: envOr("DB_USER", "root"),
		DBPass: strings.TrimSpace(os.Getenv("DB_PASS")),
		DBHost: envOr("DB_HOST", "127.0.0.1:3306"),
		DBName: envOr("DB_NAME", "tourism_app"),

		GatewayBaseURL: envOr("PAYMENT_GATEWAY_BASE_URL", "https://api.paygate.example"),
		GatewaySecret:  strings.TrimSpace(os.Getenv("PAYMENT_GATEWAY_SECRET")),
		CallbackURL:    envOr("PAYMENT_CALLBACK_URL", "http://localhost:3000/payment/callback"),
		Currency:       envOr("PAYMENT_CURRENCY", "IDR"),
	}
}

func envOr(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}
