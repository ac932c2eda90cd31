// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote, request_id) and completion
(status, duration_ms). The request id comes from chi's RequestID
middleware installed by the router.

# CORS Middleware

Enable cross-origin requests from the configured frontend origins:

	handler := middleware.CORS(cfg.AllowedOrigins)(mux)

Backed by github.com/go-chi/cors. Allows methods GET, POST, PUT, PATCH,
DELETE, OPTIONS with headers Content-Type and Authorization. Preflight
requests are answered without reaching the mux.

# Authentication

Protect a handler with a bearer token check:

	mux.HandleFunc("GET /api/auth/session",
		middleware.WithLogging(middleware.RequireAuth(tokens, h.Session)))

Missing, malformed, expired and revoked tokens get 401. Verified claims are
available to the handler through auth.ClaimsFromContext.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.ValidationError(w, "Invalid match", map[string]string{"date": "required"})

Parse JSON request bodies:

	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used in request logs.
*/
package middleware
