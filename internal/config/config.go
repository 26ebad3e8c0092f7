package config

import (
	"time"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Config is the root configuration for the molduras scraper.
type Config struct {
	Site      SiteConfig      `mapstructure:"site"      yaml:"site"`
	Fetcher   FetcherConfig   `mapstructure:"fetcher"   yaml:"fetcher"`
	Selectors SelectorsConfig `mapstructure:"selectors" yaml:"selectors"`
	Crawl     CrawlConfig     `mapstructure:"crawl"     yaml:"crawl"`
	Storage   StorageConfig   `mapstructure:"storage"   yaml:"storage"`
	Logging   LoggingConfig   `mapstructure:"logging"   yaml:"logging"`
}

// SiteConfig identifies the target store.
type SiteConfig struct {
	BaseURL    string   `mapstructure:"base_url"   yaml:"base_url"`
	Categories []string `mapstructure:"categories" yaml:"categories"`
}

// FetcherConfig controls the page and image fetchers.
type FetcherConfig struct {
	Type            string        `mapstructure:"type"              yaml:"type"` // http or browser
	UserAgent       string        `mapstructure:"user_agent"        yaml:"user_agent"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"   yaml:"request_timeout"`
	ImageTimeout    time.Duration `mapstructure:"image_timeout"     yaml:"image_timeout"`
	MaxBodySize     int64         `mapstructure:"max_body_size"     yaml:"max_body_size"`
	FollowRedirects bool          `mapstructure:"follow_redirects"  yaml:"follow_redirects"`
	MaxRedirects    int           `mapstructure:"max_redirects"     yaml:"max_redirects"`
	TLSInsecure     bool          `mapstructure:"tls_insecure"      yaml:"tls_insecure"`
	IdleConnTimeout time.Duration `mapstructure:"idle_conn_timeout" yaml:"idle_conn_timeout"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"    yaml:"max_idle_conns"`
}

// Rule is a single extraction rule. Rules in a chain are tried in order
// and the first non-empty match wins.
type Rule struct {
	Type      string `mapstructure:"type"      yaml:"type"` // css or xpath
	Selector  string `mapstructure:"selector"  yaml:"selector"`
	Attribute string `mapstructure:"attribute" yaml:"attribute"` // empty means element text
}

// SelectorsConfig holds the per-concern selector chains. The defaults
// target WooCommerce markup; a config file can retarget another store.
type SelectorsConfig struct {
	ProductLinks []Rule `mapstructure:"product_links" yaml:"product_links"`
	NextPage     []Rule `mapstructure:"next_page"     yaml:"next_page"`
	Title        []Rule `mapstructure:"title"         yaml:"title"`
	SKU          []Rule `mapstructure:"sku"           yaml:"sku"`
	Image        []Rule `mapstructure:"image"         yaml:"image"`
}

// CrawlConfig bounds the request rate.
type CrawlConfig struct {
	PageDelay    time.Duration `mapstructure:"page_delay"    yaml:"page_delay"`
	ProductDelay time.Duration `mapstructure:"product_delay" yaml:"product_delay"`
}

// StorageConfig controls where records and images land.
type StorageConfig struct {
	Type     string      `mapstructure:"type"      yaml:"type"` // json or mongo
	DataPath string      `mapstructure:"data_path" yaml:"data_path"`
	ImageDir string      `mapstructure:"image_dir" yaml:"image_dir"`
	Mongo    MongoConfig `mapstructure:"mongo"     yaml:"mongo"`
}

// MongoConfig configures the MongoDB backend.
type MongoConfig struct {
	URI        string `mapstructure:"uri"        yaml:"uri"`
	Database   string `mapstructure:"database"   yaml:"database"`
	Collection string `mapstructure:"collection" yaml:"collection"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	Output string `mapstructure:"output" yaml:"output"`
}

// DefaultConfig returns a Config targeting marcosymarcos.mx.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			BaseURL: "https://www.marcosymarcos.mx/",
			Categories: []string{
				"https://www.marcosymarcos.mx/categoria/molduras/poliestireno/",
			},
		},
		Fetcher: FetcherConfig{
			Type: "http",
			UserAgent: "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
				"(KHTML, like Gecko) Chrome/122.0 Safari/537.36",
			RequestTimeout:  30 * time.Second,
			ImageTimeout:    40 * time.Second,
			MaxBodySize:     10 * 1024 * 1024, // 10MB
			FollowRedirects: true,
			MaxRedirects:    10,
			IdleConnTimeout: 90 * time.Second,
			MaxIdleConns:    100,
		},
		Selectors: SelectorsConfig{
			ProductLinks: []Rule{
				{Type: "css", Selector: "ul.products li.product a.woocommerce-LoopProduct-link", Attribute: "href"},
				{Type: "css", Selector: `a[href*="/producto/"]`, Attribute: "href"},
			},
			NextPage: []Rule{
				{Type: "css", Selector: `a.next, a[rel="next"]`, Attribute: "href"},
			},
			Title: []Rule{
				{Type: "css", Selector: "h1.product_title"},
				{Type: "css", Selector: "h1.entry-title"},
			},
			SKU: []Rule{
				{Type: "css", Selector: "span.sku, .sku, .product_meta .sku"},
			},
			Image: []Rule{
				{Type: "css", Selector: `meta[property="og:image"]`, Attribute: "content"},
				{Type: "css", Selector: ".woocommerce-product-gallery__image img", Attribute: "data-large_image"},
				{Type: "css", Selector: ".woocommerce-product-gallery__image img", Attribute: "src"},
				{Type: "css", Selector: "img.wp-post-image", Attribute: "src"},
			},
		},
		Crawl: CrawlConfig{
			PageDelay:    600 * time.Millisecond,
			ProductDelay: 600 * time.Millisecond,
		},
		Storage: StorageConfig{
			Type:     "json",
			DataPath: "data/molduras_scraped.json",
			ImageDir: "img/molduras",
			Mongo: MongoConfig{
				URI:        "mongodb://localhost:27017",
				Database:   "molduras",
				Collection: "products",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}
