// File: utils/constants.go
package utils

// CandidateCachePrefix is the prefix used for Redis candidate set keys.
const CandidateCachePrefix = "timeline:candidates:"

// TimezonePrefPrefix is the prefix used for Redis timezone preference keys.
const TimezonePrefPrefix = "prefs:tz:"

// RequestIDHeader carries the per-request id back to the client.
const RequestIDHeader = "X-Request-ID"
