// Package services provides domain services for the dropship order pipeline.
// It implements business logic that doesn't naturally belong to a single
// aggregate root.
//
// The package includes:
//   - FailureRouter: classifies external-call failures into lifecycle routes
//     (retry, manual review, terminal failure)
//   - ExternalCallError: the error shape produced by supplier/forwarder/catalog
//     adapters, carrying the provider's error code for classification
//
// Keeping classification here decouples the state machine from any specific
// supplier or forwarder API's error vocabulary: adapters translate provider
// responses into coded errors, and the router maps codes to routes from a
// configured table.
package services
