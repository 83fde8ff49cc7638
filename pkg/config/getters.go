package config

import (
	"strconv"

	"github.com/apex/log"
)

// getters derives every Configer lookup from a single GetKey.
type getters struct {
	getKey func(key string) string
}

func (g getters) MustGetKey(key string) string {
	val := g.getKey(key)
	if val == "" {
		log.Fatalf("No such required config key: '%s'", key)
	}

	return val
}

func (g getters) GetKeyWithDefault(key, defaultValue string) string {
	if val := g.getKey(key); val != "" {
		return val
	}

	return defaultValue
}

func (g getters) GetIntKey(key string) int {
	return g.GetIntKeyWithDefault(key, 0)
}

func (g getters) MustGetIntKey(key string) int {
	intVal, err := strconv.Atoi(g.getKey(key))
	if err != nil {
		log.Fatalf("Required config key either doesn't exist or isn't an int: '%s': %s", key, err)
	}

	return intVal
}

func (g getters) GetIntKeyWithDefault(key string, defaultValue int) int {
	intVal, err := strconv.Atoi(g.getKey(key))
	if err != nil {
		return defaultValue
	}

	return intVal
}
