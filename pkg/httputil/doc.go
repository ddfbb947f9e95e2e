// Package httputil provides HTTP utilities for standardized request/response handling.
//
// # Overview
//
// This package offers helper functions for JSON encoding, error responses,
// and the middleware shared by the documentation and API routers.
//
// # Response Helpers
//
// JSON responses:
//
//	httputil.WriteJSON(w, http.StatusOK, data)
//	httputil.WriteSuccess(w, payload)
//
// Error responses:
//
//	httputil.WriteError(w, http.StatusBadRequest, err)
//	httputil.WriteNotFoundError(w, "project not found")
//	httputil.WriteInternalError(w, err)
//
// # Middleware
//
// Request-scoped middleware, applied router-wide:
//
//	router.Use(httputil.RequestIDMiddleware)
//	router.Use(httputil.LoggingMiddleware(logger))
//	router.Use(httputil.RecoveryMiddleware(logger))
//
// RequestIDMiddleware honors an inbound X-Request-ID header and generates a
// UUID when absent; downstream handlers read it back through
// observability.GetRequestID.
package httputil
