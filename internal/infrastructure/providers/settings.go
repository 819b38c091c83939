package providers

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

func settingString(settings map[string]string, key, def string) string {
	if v := strings.TrimSpace(settings[key]); v != "" {
		return v
	}
	return def
}

func settingFloat(settings map[string]string, key string, def float64) (float64, error) {
	raw := strings.TrimSpace(settings[key])
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("setting %s: %w", key, err)
	}
	return v, nil
}

func settingDuration(settings map[string]string, key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(settings[key])
	if raw == "" {
		return def, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("setting %s: %w", key, err)
	}
	return v, nil
}

func settingBaseURL(settings map[string]string) (*url.URL, error) {
	raw := strings.TrimSpace(settings["base_url"])
	if raw == "" {
		return nil, fmt.Errorf("setting base_url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("setting base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("setting base_url: unsupported scheme %q", u.Scheme)
	}
	return u, nil
}

func resolve(base *url.URL, path string) string {
	return base.JoinPath(path).String()
}
