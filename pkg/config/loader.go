package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// configCache stores parsed configuration values keyed by type name.
type configCache struct {
	mu     sync.RWMutex
	values map[string]any
}

var globalCache = &configCache{values: make(map[string]any)}

// LoadEnv reads .env files into the process environment. Variables that are
// already set win over file values; among the files, later ones override
// earlier ones. Without arguments it reads ".env" and ignores a missing file.
func LoadEnv(paths ...string) error {
	optional := len(paths) == 0
	if optional {
		paths = []string{".env"}
	}

	values, err := godotenv.Read(paths...)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return errors.Join(ErrLoadingEnvFile, err)
	}

	for key, value := range values {
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return errors.Join(ErrLoadingEnvFile, err)
		}
	}
	return nil
}

// Load parses environment variables into v based on its `env` field tags.
// Each configuration type is parsed once; later calls get the cached copy.
//
// Example:
//
//	var app config.App
//	if err := config.Load(&app); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	typeName := getTypeName[T]()

	globalCache.mu.RLock()
	cached, ok := globalCache.values[typeName]
	globalCache.mu.RUnlock()
	if ok {
		*v = cached.(T)
		return nil
	}

	return parse(v, typeName)
}

// Reload parses v again, ignoring and replacing any cached value.
func Reload[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	return parse(v, getTypeName[T]())
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// ResetCache drops every cached configuration. Intended for tests.
func ResetCache() {
	globalCache.mu.Lock()
	globalCache.values = make(map[string]any)
	globalCache.mu.Unlock()
}

func parse[T any](v *T, typeName string) error {
	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	globalCache.mu.Lock()
	globalCache.values[typeName] = parsed
	globalCache.mu.Unlock()

	*v = parsed
	return nil
}

// getTypeName returns a string identifier for the generic type T
func getTypeName[T any]() string {
	t := reflect.TypeFor[T]()
	return t.PkgPath() + "." + t.String()
}
