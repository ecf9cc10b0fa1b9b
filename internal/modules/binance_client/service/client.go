package service

import (
	"net/http"
	"strings"

	"breadth_bot/internal/modules/config"
)

// Client — REST-клиент Binance spot: только публичные endpoints,
// подпись не нужна.
type Client struct {
	cfg  *config.Config
	http *http.Client
	base string
}

func NewClient(cfg *config.Config) *Client {
	// прокси отключаем явно через транспорт, а не через окружение процесса
	tr := &http.Transport{Proxy: http.ProxyFromEnvironment}
	if cfg.Binance.BypassProxy {
		tr.Proxy = nil
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Binance.Timeout, Transport: tr},
		base: strings.TrimSuffix(cfg.Binance.BaseURL, "/"),
	}
}
