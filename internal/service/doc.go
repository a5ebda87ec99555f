// Package service contains the application use cases. TaskService
// orchestrates the task store and the insights engine: it owns the clock
// used for insights and translates store errors into service errors that
// the API layer maps to HTTP status codes.
//
// The service layer depends on domain entities and the store interfaces,
// never on a specific database implementation.
package service
