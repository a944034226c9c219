package cutout

import (
	"net/http"

	"forwardicons/internal/config"
)

// Preset provider names, in their stable configuration order.
const (
	ProviderRemoveBG  = "removebg"
	ProviderClipdrop  = "clipdrop"
	ProviderPhotoroom = "photoroom"
	ProviderCustom    = "custom"
)

var presetOrder = []string{ProviderRemoveBG, ProviderClipdrop, ProviderPhotoroom}

var presets = map[string]RemoverConfig{
	ProviderRemoveBG: {
		Name:       ProviderRemoveBG,
		URL:        "https://api.remove.bg/v1.0/removebg",
		FieldName:  "image_file",
		AuthHeader: "X-Api-Key",
		Fields:     map[string]string{"size": "auto"},
	},
	ProviderClipdrop: {
		Name:       ProviderClipdrop,
		URL:        "https://clipdrop-api.co/remove-background/v1",
		FieldName:  "image_file",
		AuthHeader: "x-api-key",
	},
	ProviderPhotoroom: {
		Name:       ProviderPhotoroom,
		URL:        "https://sdk.photoroom.com/v1/segment",
		FieldName:  "image_file",
		AuthHeader: "x-api-key",
	},
}

// PresetConfig returns the endpoint description for a named preset with apiKey filled in.
func PresetConfig(name, apiKey string) (RemoverConfig, bool) {
	cfg, ok := presets[name]
	if !ok {
		return RemoverConfig{}, false
	}
	cfg.APIKey = apiKey
	return cfg, true
}

// DefaultCandidates builds a candidate for every preset whose key is set.
// endpoints optionally overrides preset URLs by name (for testing).
func DefaultCandidates(keys map[string]string, client *http.Client, endpoints map[string]string) []Candidate {
	var out []Candidate
	for _, name := range presetOrder {
		key := keys[name]
		if key == "" {
			continue
		}
		cfg, _ := PresetConfig(name, key)
		if url, ok := endpoints[name]; ok {
			cfg.URL = url
		}
		out = append(out, Candidate{Name: name, Remover: NewRemover(cfg, client)})
	}
	return out
}

// NewCustomRemover creates the remover for the gated custom endpoint.
func NewCustomRemover(cfg *config.CustomCutoutConfig, client *http.Client) *Remover {
	return NewRemover(RemoverConfig{
		Name:       ProviderCustom,
		URL:        cfg.URL,
		FieldName:  cfg.FieldName,
		AuthHeader: cfg.AuthHeader,
		AuthPrefix: cfg.AuthPrefix,
		APIKey:     cfg.APIKey,
	}, client)
}
