package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server       ServerConfig
	Log          LogConfig
	CORS         CORSConfig
	Upload       UploadConfig
	AWS          AWSConfig
	Catalog      CatalogConfig
	Batch        BatchConfig
	Coordination CoordinationConfig
	DB           DBConfig
	Cutout       CutoutConfig
	Session      SessionConfig
	RateLimit    RateLimitConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
	MaxUploadMB  int64         `mapstructure:"max_upload_mb"`

	// TrustedProxies are the reverse proxies allowed to set X-Forwarded-For.
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

// IsDevelopment reports whether the server runs in a development environment.
func (s *ServerConfig) IsDevelopment() bool {
	return s.Environment == "" || s.Environment == "development"
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// PicGoConfig holds the key-header upload backend settings.
type PicGoConfig struct {
	APIURL string `mapstructure:"api_url"`
	APIKey string `mapstructure:"api_key"`
}

// ImgURLConfig holds the form-credential upload backend settings.
type ImgURLConfig struct {
	APIURL  string `mapstructure:"api_url"`
	UID     string `mapstructure:"uid"`
	Token   string `mapstructure:"token"`
	AlbumID string `mapstructure:"album_id"`
}

// PicUIConfig holds the bearer-token upload backend settings.
type PicUIConfig struct {
	APIURL     string `mapstructure:"api_url"`
	Token      string `mapstructure:"token"`
	Permission string `mapstructure:"permission"`
	StrategyID string `mapstructure:"strategy_id"`
	AlbumID    string `mapstructure:"album_id"`
	ExpiredAt  string `mapstructure:"expired_at"`
}

// S3HostConfig holds settings for storing uploaded images in an S3 bucket.
type S3HostConfig struct {
	Bucket        string `mapstructure:"bucket"`
	KeyPrefix     string `mapstructure:"key_prefix"`
	PublicBaseURL string `mapstructure:"public_base_url"`
}

// UploadConfig selects and configures the image hosting backend.
type UploadConfig struct {
	Service     string `mapstructure:"service"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
	PicGo       PicGoConfig
	ImgURL      ImgURLConfig
	PicUI       PicUIConfig
	S3          S3HostConfig
}

// Timeout returns the per-request upload timeout.
func (u *UploadConfig) Timeout() time.Duration {
	return secondsOr(u.TimeoutSecs, 30)
}

// AWSConfig holds the shared AWS client settings.
type AWSConfig struct {
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// GistConfig holds the GitHub gist catalog backend settings.
type GistConfig struct {
	ID     string `mapstructure:"id"`
	User   string `mapstructure:"user"`
	Token  string `mapstructure:"token"`
	APIURL string `mapstructure:"api_url"`
}

// S3CatalogConfig holds the S3 catalog backend settings.
type S3CatalogConfig struct {
	Bucket string `mapstructure:"bucket"`
	Key    string `mapstructure:"key"`
}

// CatalogConfig configures the remote catalog document.
type CatalogConfig struct {
	Backend     string        `mapstructure:"backend"`
	FileName    string        `mapstructure:"file_name"`
	TimeoutSecs int           `mapstructure:"timeout_secs"`
	StrictMerge bool          `mapstructure:"strict_merge"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
	Gist        GistConfig
	S3          S3CatalogConfig
}

// Timeout returns the per-call catalog store timeout.
func (c *CatalogConfig) Timeout() time.Duration {
	return secondsOr(c.TimeoutSecs, 15)
}

// BatchConfig holds pending batch settings.
type BatchConfig struct {
	MaxPending int `mapstructure:"max_pending"`
}

// CoordinationConfig selects how catalog merges and the pending batch are
// coordinated: "local" (in-process) or "postgres" (shared across instances).
type CoordinationConfig struct {
	Mode string `mapstructure:"mode"`
}

// UsesPostgres reports whether the Postgres coordination backend is selected.
func (c *CoordinationConfig) UsesPostgres() bool {
	return strings.EqualFold(c.Mode, "postgres")
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	DSN     string `mapstructure:"dsn"`
	MaxOpen int    `mapstructure:"max_open"`
	MaxIdle int    `mapstructure:"max_idle"`
}

// CustomCutoutConfig holds the gated custom background-removal backend.
type CustomCutoutConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Password   string `mapstructure:"password"`
	URL        string `mapstructure:"url"`
	FieldName  string `mapstructure:"field_name"`
	AuthHeader string `mapstructure:"auth_header"`
	AuthPrefix string `mapstructure:"auth_prefix"`
	APIKey     string `mapstructure:"api_key"`
}

// CutoutConfig holds background-removal provider credentials.
type CutoutConfig struct {
	TimeoutSecs    int    `mapstructure:"timeout_secs"`
	RemoveBGAPIKey string `mapstructure:"removebg_api_key"`
	ClipdropAPIKey string `mapstructure:"clipdrop_api_key"`
	PhotoroomKey   string `mapstructure:"photoroom_api_key"`
	Custom         CustomCutoutConfig
}

// Timeout returns the per-call cutout timeout.
func (c *CutoutConfig) Timeout() time.Duration {
	return secondsOr(c.TimeoutSecs, 60)
}

// ProviderKeys returns the configured default provider credentials keyed by
// provider name. Providers without a key are omitted.
func (c *CutoutConfig) ProviderKeys() map[string]string {
	keys := map[string]string{}
	if c.RemoveBGAPIKey != "" {
		keys["removebg"] = c.RemoveBGAPIKey
	}
	if c.ClipdropAPIKey != "" {
		keys["clipdrop"] = c.ClipdropAPIKey
	}
	if c.PhotoroomKey != "" {
		keys["photoroom"] = c.PhotoroomKey
	}
	return keys
}

// SessionConfig holds the gated-mode session token settings.
type SessionConfig struct {
	Secret       string        `mapstructure:"secret"`
	TTL          time.Duration `mapstructure:"ttl"`
	CookieName   string        `mapstructure:"cookie_name"`
	CookieSecure bool          `mapstructure:"cookie_secure"`
}

// RateLimitConfig holds request rate limits.
type RateLimitConfig struct {
	AuthRPS   float64 `mapstructure:"auth_rps"`
	AuthBurst int     `mapstructure:"auth_burst"`
}

// splitList parses a comma-separated value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func secondsOr(secs, fallback int) time.Duration {
	if secs <= 0 {
		secs = fallback
	}
	return time.Duration(secs) * time.Second
}

// Load reads configuration from environment variables with the FORWARD_ prefix.
// The unprefixed variable names of the original deployment are honoured too.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FORWARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "90s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.max_upload_mb", 20)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Upload defaults
	v.SetDefault("upload.service", "PICGO")
	v.SetDefault("upload.timeout_secs", 30)
	v.SetDefault("upload.picgo.api_url", "https://www.picgo.net/api/1/upload")
	v.SetDefault("upload.imgurl.api_url", "https://www.imgurl.org/api/v2/upload")
	v.SetDefault("upload.picui.api_url", "https://picui.cn/api/v1/upload")
	v.SetDefault("upload.picui.permission", "0")
	v.SetDefault("upload.s3.key_prefix", "icons")

	v.SetDefault("aws.region", "us-east-1")

	// Catalog defaults
	v.SetDefault("catalog.backend", "gist")
	v.SetDefault("catalog.file_name", "icons.json")
	v.SetDefault("catalog.timeout_secs", 15)
	v.SetDefault("catalog.strict_merge", false)
	v.SetDefault("catalog.cache_ttl", "30s")
	v.SetDefault("catalog.gist.api_url", "https://api.github.com")
	v.SetDefault("catalog.s3.key", "catalog/icons.json")

	v.SetDefault("batch.max_pending", 1000)
	v.SetDefault("coordination.mode", "local")

	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	// Cutout defaults
	v.SetDefault("cutout.timeout_secs", 60)
	v.SetDefault("cutout.custom.enabled", false)
	v.SetDefault("cutout.custom.field_name", "image_file")
	v.SetDefault("cutout.custom.auth_header", "Authorization")
	v.SetDefault("cutout.custom.auth_prefix", "Bearer ")

	// Session defaults
	v.SetDefault("session.ttl", "24h")
	v.SetDefault("session.cookie_name", "ai_custom_session")
	v.SetDefault("session.cookie_secure", true)

	v.SetDefault("ratelimit.auth_rps", 0.2)
	v.SetDefault("ratelimit.auth_burst", 5)

	// Bind environment variables explicitly for nested keys. Later names are
	// the ones the original deployment used.
	envBindings := map[string][]string{
		"server.port":                 {"FORWARD_SERVER_PORT"},
		"server.read_timeout":         {"FORWARD_SERVER_READ_TIMEOUT"},
		"server.write_timeout":        {"FORWARD_SERVER_WRITE_TIMEOUT"},
		"server.environment":          {"FORWARD_SERVER_ENVIRONMENT"},
		"server.max_upload_mb":        {"FORWARD_SERVER_MAX_UPLOAD_MB"},
		"server.trusted_proxies":      {"FORWARD_SERVER_TRUSTED_PROXIES"},
		"log.level":                   {"FORWARD_LOG_LEVEL"},
		"log.format":                  {"FORWARD_LOG_FORMAT"},
		"cors.allowed_origins":        {"FORWARD_CORS_ALLOWED_ORIGINS"},
		"upload.service":              {"FORWARD_UPLOAD_SERVICE", "UPLOAD_SERVICE"},
		"upload.timeout_secs":         {"FORWARD_UPLOAD_TIMEOUT_SECS"},
		"upload.picgo.api_url":        {"FORWARD_UPLOAD_PICGO_API_URL"},
		"upload.picgo.api_key":        {"FORWARD_UPLOAD_PICGO_API_KEY", "PICGO_API_KEY"},
		"upload.imgurl.api_url":       {"FORWARD_UPLOAD_IMGURL_API_URL"},
		"upload.imgurl.uid":           {"FORWARD_UPLOAD_IMGURL_UID", "IMGURL_API_UID"},
		"upload.imgurl.token":         {"FORWARD_UPLOAD_IMGURL_TOKEN", "IMGURL_API_TOKEN"},
		"upload.imgurl.album_id":      {"FORWARD_UPLOAD_IMGURL_ALBUM_ID", "IMGURL_ALBUM_ID"},
		"upload.picui.api_url":        {"FORWARD_UPLOAD_PICUI_API_URL"},
		"upload.picui.token":          {"FORWARD_UPLOAD_PICUI_TOKEN", "PICUI_TOKEN"},
		"upload.picui.permission":     {"FORWARD_UPLOAD_PICUI_PERMISSION", "PICUI_PERMISSION"},
		"upload.picui.strategy_id":    {"FORWARD_UPLOAD_PICUI_STRATEGY_ID", "PICUI_STRATEGY_ID"},
		"upload.picui.album_id":       {"FORWARD_UPLOAD_PICUI_ALBUM_ID", "PICUI_ALBUM_ID"},
		"upload.picui.expired_at":     {"FORWARD_UPLOAD_PICUI_EXPIRED_AT", "PICUI_EXPIRED_AT"},
		"upload.s3.bucket":            {"FORWARD_UPLOAD_S3_BUCKET"},
		"upload.s3.key_prefix":        {"FORWARD_UPLOAD_S3_KEY_PREFIX"},
		"upload.s3.public_base_url":   {"FORWARD_UPLOAD_S3_PUBLIC_BASE_URL"},
		"aws.region":                  {"FORWARD_AWS_REGION"},
		"aws.endpoint":                {"FORWARD_AWS_ENDPOINT"},
		"aws.access_key":              {"FORWARD_AWS_ACCESS_KEY"},
		"aws.secret_key":              {"FORWARD_AWS_SECRET_KEY"},
		"catalog.backend":             {"FORWARD_CATALOG_BACKEND"},
		"catalog.file_name":           {"FORWARD_CATALOG_FILE_NAME"},
		"catalog.timeout_secs":        {"FORWARD_CATALOG_TIMEOUT_SECS"},
		"catalog.strict_merge":        {"FORWARD_CATALOG_STRICT_MERGE"},
		"catalog.cache_ttl":           {"FORWARD_CATALOG_CACHE_TTL"},
		"catalog.gist.id":             {"FORWARD_CATALOG_GIST_ID", "GIST_ID"},
		"catalog.gist.user":           {"FORWARD_CATALOG_GIST_USER", "GITHUB_USER"},
		"catalog.gist.token":          {"FORWARD_CATALOG_GIST_TOKEN", "GITHUB_TOKEN"},
		"catalog.gist.api_url":        {"FORWARD_CATALOG_GIST_API_URL"},
		"catalog.s3.bucket":           {"FORWARD_CATALOG_S3_BUCKET"},
		"catalog.s3.key":              {"FORWARD_CATALOG_S3_KEY"},
		"batch.max_pending":           {"FORWARD_BATCH_MAX_PENDING"},
		"coordination.mode":           {"FORWARD_COORDINATION_MODE"},
		"db.dsn":                      {"FORWARD_DB_DSN", "DATABASE_URL"},
		"db.max_open":                 {"FORWARD_DB_MAX_OPEN"},
		"db.max_idle":                 {"FORWARD_DB_MAX_IDLE"},
		"cutout.timeout_secs":         {"FORWARD_CUTOUT_TIMEOUT_SECS"},
		"cutout.removebg_api_key":     {"FORWARD_CUTOUT_REMOVEBG_API_KEY", "REMOVE_BG_API_KEY"},
		"cutout.clipdrop_api_key":     {"FORWARD_CUTOUT_CLIPDROP_API_KEY", "CLIPDROP_API_KEY"},
		"cutout.photoroom_api_key":    {"FORWARD_CUTOUT_PHOTOROOM_API_KEY", "PHOTOROOM_API_KEY"},
		"cutout.custom.enabled":       {"FORWARD_CUTOUT_CUSTOM_ENABLED"},
		"cutout.custom.password":      {"FORWARD_CUTOUT_CUSTOM_PASSWORD"},
		"cutout.custom.url":           {"FORWARD_CUTOUT_CUSTOM_URL"},
		"cutout.custom.field_name":    {"FORWARD_CUTOUT_CUSTOM_FIELD_NAME"},
		"cutout.custom.auth_header":   {"FORWARD_CUTOUT_CUSTOM_AUTH_HEADER"},
		"cutout.custom.auth_prefix":   {"FORWARD_CUTOUT_CUSTOM_AUTH_PREFIX"},
		"cutout.custom.api_key":       {"FORWARD_CUTOUT_CUSTOM_API_KEY"},
		"session.secret":              {"FORWARD_SESSION_SECRET"},
		"session.ttl":                 {"FORWARD_SESSION_TTL"},
		"session.cookie_name":         {"FORWARD_SESSION_COOKIE_NAME"},
		"session.cookie_secure":       {"FORWARD_SESSION_COOKIE_SECURE"},
		"ratelimit.auth_rps":          {"FORWARD_RATELIMIT_AUTH_RPS"},
		"ratelimit.auth_burst":        {"FORWARD_RATELIMIT_AUTH_BURST"},
	}
	for key, envs := range envBindings {
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if FORWARD_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("FORWARD_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:           serverPort,
		ReadTimeout:    v.GetDuration("server.read_timeout"),
		WriteTimeout:   v.GetDuration("server.write_timeout"),
		Environment:    v.GetString("server.environment"),
		MaxUploadMB:    v.GetInt64("server.max_upload_mb"),
		TrustedProxies: splitList(v.GetString("server.trusted_proxies")),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitList(v.GetString("cors.allowed_origins"))}

	cfg.Upload = UploadConfig{
		Service:     strings.ToUpper(strings.TrimSpace(v.GetString("upload.service"))),
		TimeoutSecs: v.GetInt("upload.timeout_secs"),
		PicGo: PicGoConfig{
			APIURL: v.GetString("upload.picgo.api_url"),
			APIKey: v.GetString("upload.picgo.api_key"),
		},
		ImgURL: ImgURLConfig{
			APIURL:  v.GetString("upload.imgurl.api_url"),
			UID:     v.GetString("upload.imgurl.uid"),
			Token:   v.GetString("upload.imgurl.token"),
			AlbumID: strings.TrimSpace(v.GetString("upload.imgurl.album_id")),
		},
		PicUI: PicUIConfig{
			APIURL:     v.GetString("upload.picui.api_url"),
			Token:      strings.TrimSpace(v.GetString("upload.picui.token")),
			Permission: strings.TrimSpace(v.GetString("upload.picui.permission")),
			StrategyID: strings.TrimSpace(v.GetString("upload.picui.strategy_id")),
			AlbumID:    strings.TrimSpace(v.GetString("upload.picui.album_id")),
			ExpiredAt:  strings.TrimSpace(v.GetString("upload.picui.expired_at")),
		},
		S3: S3HostConfig{
			Bucket:        v.GetString("upload.s3.bucket"),
			KeyPrefix:     v.GetString("upload.s3.key_prefix"),
			PublicBaseURL: strings.TrimRight(v.GetString("upload.s3.public_base_url"), "/"),
		},
	}
	cfg.AWS = AWSConfig{
		Region:    v.GetString("aws.region"),
		Endpoint:  v.GetString("aws.endpoint"),
		AccessKey: v.GetString("aws.access_key"),
		SecretKey: v.GetString("aws.secret_key"),
	}
	cfg.Catalog = CatalogConfig{
		Backend:     strings.ToLower(v.GetString("catalog.backend")),
		FileName:    v.GetString("catalog.file_name"),
		TimeoutSecs: v.GetInt("catalog.timeout_secs"),
		StrictMerge: v.GetBool("catalog.strict_merge"),
		CacheTTL:    v.GetDuration("catalog.cache_ttl"),
		Gist: GistConfig{
			ID:     v.GetString("catalog.gist.id"),
			User:   v.GetString("catalog.gist.user"),
			Token:  v.GetString("catalog.gist.token"),
			APIURL: strings.TrimRight(v.GetString("catalog.gist.api_url"), "/"),
		},
		S3: S3CatalogConfig{
			Bucket: v.GetString("catalog.s3.bucket"),
			Key:    v.GetString("catalog.s3.key"),
		},
	}
	cfg.Batch = BatchConfig{MaxPending: v.GetInt("batch.max_pending")}
	cfg.Coordination = CoordinationConfig{Mode: strings.ToLower(v.GetString("coordination.mode"))}
	cfg.DB = DBConfig{
		DSN:     v.GetString("db.dsn"),
		MaxOpen: v.GetInt("db.max_open"),
		MaxIdle: v.GetInt("db.max_idle"),
	}
	cfg.Cutout = CutoutConfig{
		TimeoutSecs:    v.GetInt("cutout.timeout_secs"),
		RemoveBGAPIKey: strings.TrimSpace(v.GetString("cutout.removebg_api_key")),
		ClipdropAPIKey: strings.TrimSpace(v.GetString("cutout.clipdrop_api_key")),
		PhotoroomKey:   strings.TrimSpace(v.GetString("cutout.photoroom_api_key")),
		Custom: CustomCutoutConfig{
			Enabled:    v.GetBool("cutout.custom.enabled"),
			Password:   v.GetString("cutout.custom.password"),
			URL:        v.GetString("cutout.custom.url"),
			FieldName:  v.GetString("cutout.custom.field_name"),
			AuthHeader: v.GetString("cutout.custom.auth_header"),
			AuthPrefix: v.GetString("cutout.custom.auth_prefix"),
			APIKey:     v.GetString("cutout.custom.api_key"),
		},
	}
	cfg.Session = SessionConfig{
		Secret:       v.GetString("session.secret"),
		TTL:          v.GetDuration("session.ttl"),
		CookieName:   v.GetString("session.cookie_name"),
		CookieSecure: v.GetBool("session.cookie_secure"),
	}
	cfg.RateLimit = RateLimitConfig{
		AuthRPS:   v.GetFloat64("ratelimit.auth_rps"),
		AuthBurst: v.GetInt("ratelimit.auth_burst"),
	}

	return cfg, nil
}
