package main

import "time"

type Config struct {
	Host              string        `env:"HOST,default=localhost"`
	Port              int           `env:"PORT,default=8080"`
	LogLevel          string        `env:"LOG_LEVEL,default=INFO"`
	BadgerFilepath    string        `env:"BADGER_FILEPATH,required=true"`
	JWTSecret         string        `env:"JWT_SECRET,required=true"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=24h"`
	SendBufferSize    int           `env:"SEND_BUFFER_SIZE,default=512"`
	ReadLimit         int           `env:"READ_LIMIT,default=5120"`
	PongWait          time.Duration `env:"PONG_WAIT,default=60s"`
	WriteWait         time.Duration `env:"WRITE_WAIT,default=10s"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
	EnableClear       bool          `env:"ENABLE_CLEAR,default=false"`
}
