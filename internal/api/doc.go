// Package api provides the certificate verification REST API.
package api
