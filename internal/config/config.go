// Package config reads the service configuration from the environment once
// at startup. Nothing here is consulted again after boot.
package config

import (
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries everything the process needs from the environment.
type Config struct {
	// Port the HTTP server listens on.
	Port string
	// BindHost is the listen interface.
	BindHost string

	// RedisHost/RedisPort locate the optional cache backend. An empty
	// RedisHost disables it entirely.
	RedisHost string
	RedisPort string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// FromEnv builds a Config from the environment with defaults matching the
// service's historical bindings (PORT, HOSTNAME bind, REDIS_* backend).
func FromEnv() Config {
	return Config{
		Port:         envStr("PORT", "5000"),
		BindHost:     envStr("BIND_HOST", "0.0.0.0"),
		RedisHost:    envStr("REDIS_HOST", ""),
		RedisPort:    envStr("REDIS_PORT", "6379"),
		ReadTimeout:  time.Duration(envInt("READ_TIMEOUT_SECONDS", 10)) * time.Second,
		WriteTimeout: time.Duration(envInt("WRITE_TIMEOUT_SECONDS", 20)) * time.Second,
		IdleTimeout:  time.Duration(envInt("IDLE_TIMEOUT_SECONDS", 60)) * time.Second,
	}
}

// ListenAddr is the host:port the HTTP server binds.
func (c Config) ListenAddr() string {
	return net.JoinHostPort(c.BindHost, c.Port)
}

// RedisAddr is the cache backend address, or "" when the backend is
// disabled.
func (c Config) RedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	return net.JoinHostPort(c.RedisHost, c.RedisPort)
}

func envStr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}
