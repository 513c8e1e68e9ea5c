package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeNetwork represents network-related errors
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeParsing represents HTML parsing errors
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypeRateLimit represents rate limiting errors
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypeCache represents cache-related errors
	ErrorTypeCache ErrorType = "cache"
	// ErrorTypePublisher represents publisher-related errors
	ErrorTypePublisher ErrorType = "publisher"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// ScrapeError represents a scrape-pipeline error tied to a shop
type ScrapeError struct {
	Type    ErrorType
	Shop    string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Shop, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Shop, e.Message)
}

// Unwrap returns the underlying error
func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// New creates a new ScrapeError
func New(errType ErrorType, shop, message string, err error) *ScrapeError {
	return &ScrapeError{
		Type:    errType,
		Shop:    shop,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewNetwork creates a new network error
func NewNetwork(shop, message string, err error) *ScrapeError {
	return New(ErrorTypeNetwork, shop, message, err)
}

// NewParsing creates a new parsing error
func NewParsing(shop, message string, err error) *ScrapeError {
	return New(ErrorTypeParsing, shop, message, err)
}

// NewRateLimit creates a new rate limit error
func NewRateLimit(shop string, duration time.Duration) *ScrapeError {
	message := fmt.Sprintf("rate limited for %v", duration)
	return New(ErrorTypeRateLimit, shop, message, nil)
}

// NewCache creates a new cache error
func NewCache(shop, message string, err error) *ScrapeError {
	return New(ErrorTypeCache, shop, message, err)
}

// NewPublisher creates a new publisher error
func NewPublisher(shop, message string, err error) *ScrapeError {
	return New(ErrorTypePublisher, shop, message, err)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *ScrapeError {
	return New(ErrorTypeConfiguration, "", message, err)
}
