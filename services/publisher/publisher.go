package publisher

// Publisher represents a service for publishing scraped products
type Publisher interface {
	// Publish publishes a message keyed by shop name
	Publish(shop string, message []byte) error

	// TrimStream trims the stream to the configured maximum length
	TrimStream() error

	// Close closes the publisher connection
	Close() error
}
