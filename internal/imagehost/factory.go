package imagehost

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"forwardicons/internal/config"
	"forwardicons/internal/port"
)

// ProviderFactory creates an ImageHost from the upload config.
type ProviderFactory func(cfg *config.UploadConfig, client *http.Client) (port.ImageHost, error)

// registry of image host factories keyed by upper-case service name, populated
// by init() in each provider package or explicitly via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers an image host factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[strings.ToUpper(name)] = factory
}

// Providers returns the registered service names in sorted order.
func Providers() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New creates the ImageHost selected by cfg.Service. An empty service selects PICGO.
func New(cfg *config.UploadConfig) (port.ImageHost, error) {
	name := strings.ToUpper(strings.TrimSpace(cfg.Service))
	if name == "" {
		name = "PICGO"
	}
	factory, ok := providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown upload service: %s", cfg.Service)
	}
	return factory(cfg, &http.Client{Timeout: cfg.Timeout()})
}
