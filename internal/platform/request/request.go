// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/athloshq/athlos/internal/platform/apperr"
	"github.com/athloshq/athlos/internal/platform/ctxutil"
	"github.com/athloshq/athlos/internal/platform/sec"
	"github.com/athloshq/athlos/internal/platform/validate"
	"github.com/athloshq/athlos/pkg/convert"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
IntID retrieves a named URL parameter and parses it as a numeric identifier.

Returns:
  - int64: The parsed identifier
  - error: apperr.NotFound if the parameter is missing or not a positive integer
*/
func IntID(request *http.Request, name string) (int64, error) {
	id := convert.ToInt64(chi.URLParam(request, name))
	if id <= 0 {
		return 0, apperr.NotFound("Resource")
	}
	return id, nil
}

/*
Claims extracts the authenticated admin claims from the request context.

Returns nil if the request is not authenticated.
*/
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetClaims(request.Context())
}

/*
RequiredClaims ensures the request is authenticated and returns the admin claims.

Returns:
  - *sec.AuthClaims: The authenticated admin claims
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {

	// Get admin claims
	claims := ctxutil.GetClaims(request.Context())

	// If the request is not authenticated, return an error
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	return claims, nil
}

/*
RequiredAdminID returns the admin ID of the currently logged-in administrator.

Returns:
  - int64: Admin ID
  - error: apperr.Unauthorized if not authenticated
*/
func RequiredAdminID(request *http.Request) (int64, error) {

	// Get admin claims
	claims, err := RequiredClaims(request)

	// If the request is not authenticated, return an error
	if err != nil {
		return 0, err
	}

	return claims.AdminID, nil
}
