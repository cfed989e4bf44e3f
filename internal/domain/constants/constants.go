package constants

// Pub/Sub providers
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// APIBasePath prefixes every storefront route.
const APIBasePath = "/api/working"
