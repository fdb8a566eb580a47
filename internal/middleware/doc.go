// Package middleware provides HTTP middleware for the preview server.
//
// It includes:
//   - Request logging in W3C Extended Log Format
//   - Prometheus request metrics with bounded path labels
//   - Filtering of health check and thumbnail requests from the request log
package middleware
