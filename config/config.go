package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

func New() map[string]string {
	environ := os.Environ()
	envAsMap := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry != "" {
			key, value := split(entry)
			envAsMap[key] = value
		}
	}
	return envAsMap
}

// assumes entry is not the empty string
func split(entry string) (key, value string) {
	parts := strings.SplitN(entry, "=", 2)
	if len(parts) < 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func GetString(config map[string]string, key string, defaultValue string) string {
	if config == nil {
		return defaultValue
	}

	if val, ok := config[key]; ok && val != "" {
		return val
	}
	return defaultValue
}

func GetInt(config map[string]string, key string, defaultValue int) int {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asInt, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}

	return asInt
}

func GetBool(config map[string]string, key string, defaultValue bool) bool {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asBool, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return defaultValue
	}
	return asBool
}

// GetDuration accepts Go duration strings ("90s", "12h"). A bare integer is
// read as seconds to stay compatible with the *_SECONDS style keys.
func GetDuration(config map[string]string, key string, defaultValue time.Duration) time.Duration {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok || strings.TrimSpace(s) == "" {
		return defaultValue
	}

	if asInt, err := strconv.Atoi(s); err == nil {
		return time.Duration(asInt) * time.Second
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return defaultValue
	}
	return d
}

// GetList splits a comma separated value, dropping blanks.
func GetList(config map[string]string, key string) []string {
	raw := GetString(config, key, "")
	if raw == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Merge copies every key of overlay into base. Keys already present in base
// win unless override is set.
func Merge(base, overlay map[string]string, override bool) map[string]string {
	if base == nil {
		base = make(map[string]string, len(overlay))
	}
	for key, value := range overlay {
		if _, exists := base[key]; exists && !override {
			continue
		}
		base[key] = value
	}
	return base
}
