package config

import "time"

// Config is the root configuration shared by all commands.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Filter   FilterConfig   `yaml:"filter"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Store    StoreConfig    `yaml:"store"`
	Wiki     WikiConfig     `yaml:"wiki"`
	Slang    SlangConfig    `yaml:"slang"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// DatabaseConfig holds PostgreSQL connection settings.
// DSN is only required when the store is enabled.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"4"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// FilterConfig holds title filter settings.
type FilterConfig struct {
	// TablesPath points to a YAML lexicon; empty uses the embedded tables.
	TablesPath string `yaml:"tables_path" env:"FILTER_TABLES_PATH"`
	MinLen     int    `yaml:"min_len"     env:"FILTER_MIN_LEN" env-default:"2"`
	MaxLen     int    `yaml:"max_len"     env:"FILTER_MAX_LEN" env-default:"4"`
}

// PipelineConfig holds dictionary generation settings.
type PipelineConfig struct {
	ProgressEvery int    `yaml:"progress_every" env:"PIPELINE_PROGRESS_EVERY" env-default:"10000"`
	InputCharset  string `yaml:"input_charset"  env:"PIPELINE_INPUT_CHARSET"  env-default:"utf-8"`
	Conversion    string `yaml:"conversion"     env:"PIPELINE_CONVERSION"     env-default:"t2s"`
	DryRun        bool   `yaml:"dry_run"        env:"PIPELINE_DRY_RUN"`
}

// StoreConfig controls the optional PostgreSQL copy of generated entries.
type StoreConfig struct {
	Enabled   bool   `yaml:"enabled"    env:"STORE_ENABLED"`
	BatchSize int    `yaml:"batch_size" env:"STORE_BATCH_SIZE" env-default:"500"`
	Source    string `yaml:"source"     env:"STORE_SOURCE"     env-default:"zhwiki"`
}

// WikiConfig holds MediaWiki API settings for the slang harvester.
type WikiConfig struct {
	APIURL    string        `yaml:"api_url"    env:"WIKI_API_URL"    env-default:"https://zh.wikipedia.org/w/api.php"`
	Page      string        `yaml:"page"       env:"WIKI_PAGE"       env-default:"中国大陆网络用语列表"`
	Timeout   time.Duration `yaml:"timeout"    env:"WIKI_TIMEOUT"    env-default:"0s"`
	UserAgent string        `yaml:"user_agent" env:"WIKI_USER_AGENT" env-default:"zhwiki-pinyin/dev"`
}

// SlangConfig holds word extraction settings for the slang harvester.
type SlangConfig struct {
	GlossPrefix string `yaml:"gloss_prefix" env:"SLANG_GLOSS_PREFIX" env-default:"形容"`
	MinLen      int    `yaml:"min_len"      env:"SLANG_MIN_LEN"      env-default:"2"`
	MaxLen      int    `yaml:"max_len"      env:"SLANG_MAX_LEN"      env-default:"9"`
}
