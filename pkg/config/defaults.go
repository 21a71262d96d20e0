package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "suitestay"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// A single-night stay is the shortest legal booking.
	DefaultMinimumStayDays = 1
	// Cancellation must happen at least this many days before entry.
	DefaultCancelNoticeDays = 3
	// Advisory suite locks self-expire so a crashed request cannot
	// wedge a suite.
	DefaultSuiteLockTTL = 10 * time.Second

	DefaultReservationEventsTopic = "reservation-events"

	DefaultPaginationLimit = 100
)
