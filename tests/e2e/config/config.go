// Package config resolves the runtime settings of the browser test harness:
// target URLs, browser choice, timeouts, output directories and the fixed
// test accounts seeded into the factory database.
package config

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Browser names the engine a session is launched with.
type Browser string

const (
	Chrome  Browser = "chrome"
	Firefox Browser = "firefox"
)

// Account identifies one of the seeded test users.
type Account string

const (
	Worker  Account = "worker"
	Foreman Account = "foreman"
	Admin   Account = "admin"
	Master  Account = "master"
	Guide   Account = "guide"
	Guide2  Account = "guide2"
)

// Accounts lists every seeded account in a stable order.
var Accounts = []Account{Worker, Foreman, Admin, Master, Guide, Guide2}

// Credential is a username/password pair.
type Credential struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// Timeouts groups the harness wait budgets.
type Timeouts struct {
	Implicit time.Duration
	Explicit time.Duration
	PageLoad time.Duration
}

const (
	DefaultBaseURL        = "http://localhost:3000"
	DefaultAPIURL         = "http://localhost:7999"
	DefaultScreenshotsDir = "screenshots"
	DefaultReportsDir     = "reports"
	DefaultPassword       = "password"

	DefaultImplicitWait = 10 * time.Second
	DefaultExplicitWait = 15 * time.Second
	DefaultPageLoad     = 30 * time.Second
)

var defaultUsernames = map[Account]string{
	Worker:  "worker1",
	Foreman: "foreman1",
	Admin:   "admin1",
	Master:  "master1",
	Guide:   "guide1",
	Guide2:  "guide2",
}

// Config is the resolved harness configuration. It is immutable after Load.
type Config struct {
	BaseURL        string
	APIURL         string
	Browser        Browser
	Headless       bool
	SlowMo         time.Duration
	Timeouts       Timeouts
	ScreenshotsDir string
	ReportsDir     string
	BrowsersPath   string
	Preinstalled   bool

	credentials map[Account]Credential
}

// Credentials returns the username/password pair for the account.
// Unknown accounts yield a zero Credential.
func (c *Config) Credentials(a Account) Credential {
	return c.credentials[a]
}

// URL joins a route path onto the frontend base URL.
func (c *Config) URL(path string) string {
	if path == "" {
		return c.BaseURL
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.BaseURL + path
}

type loadOptions struct {
	dotEnv     string
	configFile string
	quiet      bool
}

// Option tweaks how Load discovers its sources.
type Option func(*loadOptions)

// WithDotEnv reads KEY=VALUE pairs from path instead of ./.env.
func WithDotEnv(path string) Option {
	return func(o *loadOptions) { o.dotEnv = path }
}

// WithConfigFile merges a YAML file on top of the .env values.
// It overrides E2E_CONFIG_FILE.
func WithConfigFile(path string) Option {
	return func(o *loadOptions) { o.configFile = path }
}

// Quiet suppresses the resolution log line.
func Quiet() Option {
	return func(o *loadOptions) { o.quiet = true }
}

// Load resolves the configuration. Sources are layered, later ones winning:
// built-in defaults, the .env file, the YAML file named by E2E_CONFIG_FILE,
// and finally process environment variables. Values that do not parse fall
// back to their defaults.
func Load(opts ...Option) (*Config, error) {
	o := loadOptions{dotEnv: ".env", configFile: os.Getenv("E2E_CONFIG_FILE")}
	for _, opt := range opts {
		opt(&o)
	}

	v := viper.New()
	setDefaults(v)

	if o.dotEnv != "" {
		if _, err := os.Stat(o.dotEnv); err == nil {
			v.SetConfigFile(o.dotEnv)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", o.dotEnv, err)
			}
		}
	}

	if o.configFile != "" {
		v.SetConfigFile(o.configFile)
		v.SetConfigType("yaml")
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", o.configFile, err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		BaseURL:        trimURL(v.GetString("base_url"), DefaultBaseURL),
		APIURL:         trimURL(v.GetString("api_url"), DefaultAPIURL),
		Browser:        parseBrowser(v.GetString("browser")),
		Headless:       strings.EqualFold(strings.TrimSpace(v.GetString("headless")), "true"),
		SlowMo:         parseDuration(v.GetString("slow_mo"), 0, time.Millisecond),
		ScreenshotsDir: nonEmpty(v.GetString("screenshots_dir"), DefaultScreenshotsDir),
		ReportsDir:     nonEmpty(v.GetString("reports_dir"), DefaultReportsDir),
		BrowsersPath:   strings.TrimSpace(v.GetString("playwright_browsers_path")),
		Preinstalled:   strings.TrimSpace(v.GetString("playwright_preinstalled")) == "1",
		Timeouts: Timeouts{
			Implicit: parseDuration(v.GetString("timeouts.implicit"), DefaultImplicitWait, time.Second),
			Explicit: parseDuration(v.GetString("timeouts.explicit"), DefaultExplicitWait, time.Second),
			PageLoad: parseDuration(v.GetString("timeouts.page_load"), DefaultPageLoad, time.Second),
		},
		credentials: make(map[Account]Credential, len(Accounts)),
	}

	for _, a := range Accounts {
		cfg.credentials[a] = Credential{
			Username: nonEmpty(v.GetString("credentials."+string(a)+".username"), defaultUsernames[a]),
			Password: nonEmpty(v.GetString("credentials."+string(a)+".password"), DefaultPassword),
		}
	}

	if !o.quiet {
		log.Printf("[e2e-config] Resolved BaseURL=%s APIURL=%s Browser=%s Headless=%t", cfg.BaseURL, cfg.APIURL, cfg.Browser, cfg.Headless)
	}
	return cfg, nil
}

// MustLoad is Load for test setup code; it panics on a malformed config file.
func MustLoad(opts ...Option) *Config {
	cfg, err := Load(opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to load e2e config: %v", err))
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("browser", string(Chrome))
	v.SetDefault("headless", "false")
	v.SetDefault("screenshots_dir", DefaultScreenshotsDir)
	v.SetDefault("reports_dir", DefaultReportsDir)
	v.SetDefault("timeouts.implicit", DefaultImplicitWait.String())
	v.SetDefault("timeouts.explicit", DefaultExplicitWait.String())
	v.SetDefault("timeouts.page_load", DefaultPageLoad.String())
	// Bound so AutomaticEnv is consulted even without a file value.
	v.SetDefault("playwright_browsers_path", "")
	v.SetDefault("playwright_preinstalled", "")
	v.SetDefault("slow_mo", "")
	for _, a := range Accounts {
		v.SetDefault("credentials."+string(a)+".username", defaultUsernames[a])
		v.SetDefault("credentials."+string(a)+".password", DefaultPassword)
	}
}

func parseBrowser(s string) Browser {
	if Browser(strings.ToLower(strings.TrimSpace(s))) == Firefox {
		return Firefox
	}
	return Chrome
}

// parseDuration accepts Go durations ("250ms", "15s") or bare integers in unit.
func parseDuration(s string, def, unit time.Duration) time.Duration {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	if d, err := time.ParseDuration(s); err == nil && d >= 0 {
		return d
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil && n >= 0 {
		return time.Duration(n) * unit
	}
	return def
}

func trimURL(s, def string) string {
	s = strings.TrimRight(strings.TrimSpace(s), "/")
	if s == "" {
		return def
	}
	if u, err := url.Parse(s); err != nil || u.Scheme == "" || u.Host == "" {
		return def
	}
	return s
}

func nonEmpty(s, def string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return def
}

// Reachable reports whether something answers HTTP at base. A TCP dial is
// tried first so a dead port fails fast.
func Reachable(base string) bool {
	u, err := url.Parse(base)
	if err != nil || u.Host == "" {
		return false
	}
	host := u.Host
	if u.Port() == "" {
		if u.Scheme == "https" {
			host = net.JoinHostPort(u.Hostname(), "443")
		} else {
			host = net.JoinHostPort(u.Hostname(), "80")
		}
	}
	conn, err := net.DialTimeout("tcp", host, 250*time.Millisecond)
	if err != nil {
		return false
	}
	_ = conn.Close()

	client := &http.Client{Timeout: 800 * time.Millisecond}
	resp, err := client.Get(strings.TrimRight(base, "/") + "/")
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return true
}
