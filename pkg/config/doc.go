// Package config loads process configuration from environment variables
// (and an optional .env file) into tagged structs, caching each struct type
// after its first successful parse.
//
//	type Config struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
package config
