package constants

import "time"

const (
	DefaultTimeout        = 5 * time.Second
	DefaultRequestTimeout = 10 * time.Second

	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 10
	DatabaseConnMaxLifetime = 30 // minutes
	DatabaseSSLMode         = "disable"

	// SerializableRetries bounds how often a write is retried after a
	// serialization failure before giving up.
	SerializableRetries = 3
)

// Context keys
const (
	ContextTokenData = "token_data"
	ContextRequestID = "request_id"
)

// Token scopes
const (
	ScopeTokenAccess  = "access"
	ScopeTokenRefresh = "refresh"
)

// Redis keys
const (
	RedisKeyTokenBlacklist = "auth:blacklist:"
	RedisKeyLoginAttempt   = "auth:login:"

	MaxLoginAttempts = 5
	BlockDuration    = 15 * time.Minute
)

// Pagination
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 20
	MaxPageSize       = 200
)

// Queue
const (
	QueueDefault       = "default"
	TaskReportExport   = "report:export"
	ReportExportMaxTry = 3
)

const DateLayout = "2006-01-02"
