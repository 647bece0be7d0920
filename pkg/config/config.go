package config

import (
	"time"
)

type DB struct {
	Url             string        `envconfig:"URL"`
	MaxOpenConns    int           `envconfig:"MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"MAX_IDLE_CONNS" default:"25"`
	ConnMaxLifetime time.Duration `envconfig:"CONN_MAX_LIFETIME" default:"1h"`
	AutoMigrate     bool          `envconfig:"AUTO_MIGRATE" default:"false"`
}

type Redis struct {
	URL          string        `envconfig:"URL"`
	PoolSize     int           `envconfig:"POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"3s"`
}

// Lock tunes the distributed account locks. Ignored when Redis is not configured.
type Lock struct {
	KeyPrefix  string        `envconfig:"KEY_PREFIX" default:"corebank:lock:"`
	Expiry     time.Duration `envconfig:"EXPIRY" default:"10s"`
	Tries      int           `envconfig:"TRIES" default:"32"`
	RetryDelay time.Duration `envconfig:"RETRY_DELAY" default:"50ms"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[corebank]"`
}

type Bank struct {
	BcryptCost  int  `envconfig:"BCRYPT_COST" default:"14"`
	SeedCatalog bool `envconfig:"SEED_CATALOG" default:"true"`
}

type App struct {
	Env   string `envconfig:"APP_ENV" default:"development"`
	Log   *Log   `envconfig:"LOG"`
	DB    *DB    `envconfig:"DATABASE"`
	Redis *Redis `envconfig:"REDIS"`
	Lock  *Lock  `envconfig:"LOCK"`
	Bank  *Bank  `envconfig:"BANK"`
}
