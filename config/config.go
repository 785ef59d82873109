package config

import (
	"flag"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

const (
	defaultServerAddress = ":8080"
	defaultDatabaseDSN   = ""
	defaultAMQPURL       = ""
	defaultLogLevel      = "debug"

	defaultGracePeriod       = 60 * time.Second
	defaultRestaurantTimeout = 900 * time.Second
	defaultOfferTTL          = 120 * time.Second
	defaultReconcileInterval = 2 * time.Minute
	defaultExpiryBuffer      = 30 * time.Second
	defaultAssignmentMaxAge  = 24 * time.Hour
	defaultOfflineThreshold  = 10 * time.Minute
	defaultEstimatedPickup   = 15 * time.Minute
	defaultCommissionRatePct = "15"
	defaultDriverFeeSharePct = "80"
)

// CommissionSplit holds the named money split constants. The restaurant
// rate is a default only: orders carry their own rate.
type CommissionSplit struct {
	RestaurantRate   decimal.Decimal // fraction of items subtotal
	DriverFeeShare   decimal.Decimal // fraction of delivery fee paid to the driver
	PlatformFeeShare decimal.Decimal // fraction of delivery fee retained by the platform
}

type Config struct {
	ServerAddr  string
	DatabaseDSN string
	AMQPURL     string
	LogLevel    string

	GracePeriod       time.Duration
	RestaurantTimeout time.Duration
	OfferTTL          time.Duration
	ReconcileInterval time.Duration
	ExpiryBuffer      time.Duration
	AssignmentMaxAge  time.Duration
	OfflineThreshold  time.Duration
	EstimatedPickup   time.Duration

	Split CommissionSplit
}

var (
	once      sync.Once
	singleton *Config
)

// New returns new Config. It parses command line and environment variables only once.
func New() (*Config, error) {
	once.Do(func() {
		cfg := Config{
			GracePeriod:       defaultGracePeriod,
			RestaurantTimeout: defaultRestaurantTimeout,
			OfferTTL:          defaultOfferTTL,
			ReconcileInterval: defaultReconcileInterval,
			ExpiryBuffer:      defaultExpiryBuffer,
			AssignmentMaxAge:  defaultAssignmentMaxAge,
			OfflineThreshold:  defaultOfflineThreshold,
			EstimatedPickup:   defaultEstimatedPickup,
			Split:             defaultSplit(),
		}

		// initialize flags
		flag.StringVar(&cfg.ServerAddr, "a", defaultServerAddress, "foodmart server address")
		flag.StringVar(&cfg.DatabaseDSN, "d", defaultDatabaseDSN, "foodmart database DSN")
		flag.StringVar(&cfg.AMQPURL, "q", defaultAMQPURL, "notification broker URL")
		flag.StringVar(&cfg.LogLevel, "l", defaultLogLevel, "log level")

		flag.Parse()

		// if environment variable is set, then using it
		if runAddrEnv := os.Getenv("RUN_ADDRESS"); runAddrEnv != "" {
			cfg.ServerAddr = runAddrEnv
		}
		if dataBaseURIEnv := os.Getenv("DATABASE_URI"); dataBaseURIEnv != "" {
			cfg.DatabaseDSN = dataBaseURIEnv
		}
		if amqpURLEnv := os.Getenv("AMQP_URL"); amqpURLEnv != "" {
			cfg.AMQPURL = amqpURLEnv
		}
		if logLevelEnv := os.Getenv("LOG_LEVEL"); logLevelEnv != "" {
			cfg.LogLevel = logLevelEnv
		}
		if v := os.Getenv("RECONCILE_INTERVAL"); v != "" {
			if d, err := time.ParseDuration(v); err == nil {
				cfg.ReconcileInterval = d
			}
		}
		if v := os.Getenv("COMMISSION_RATE_PCT"); v != "" {
			if _, err := strconv.ParseFloat(v, 64); err == nil {
				cfg.Split.RestaurantRate = pctToRate(v)
			}
		}

		singleton = &cfg
	})

	return singleton, nil
}

func defaultSplit() CommissionSplit {
	driver := pctToRate(defaultDriverFeeSharePct)
	return CommissionSplit{
		RestaurantRate:   pctToRate(defaultCommissionRatePct),
		DriverFeeShare:   driver,
		PlatformFeeShare: decimal.NewFromInt(1).Sub(driver),
	}
}

func pctToRate(pct string) decimal.Decimal {
	d, err := decimal.NewFromString(pct)
	if err != nil {
		return decimal.Zero
	}
	return d.Div(decimal.NewFromInt(100))
}
