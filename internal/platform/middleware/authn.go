// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/navigant/backoffice/internal/platform/constants"
	"github.com/navigant/backoffice/internal/platform/ctxutil"
	"github.com/navigant/backoffice/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// Defining it here decouples the middleware from [sec.TokenService], allowing
// fakes to be injected during unit testing.
type TokenVerifier interface {
	Verify(token string) (*sec.AuthClaims, error)
}

// PrincipalResolver turns a verified subject email into the live admin.
//
// Implementations return (nil, nil) when the account no longer exists or has
// been disabled since the token was issued.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, email string) (*sec.Principal, error)
}

// Authenticate establishes the caller's identity for every request.
//
// # Flow
//  1. Read the session token from the "jwt" cookie, else from "Authorization: Bearer".
//  2. Verify the token via [TokenVerifier].
//  3. Re-load the admin via [PrincipalResolver] and inject the [*sec.Principal].
//
// The gate never rejects a request. Missing, invalid or stale credentials fall
// through as anonymous; [RequireRole] decides whether an identity was needed.
func Authenticate(verifier TokenVerifier, resolver PrincipalResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			token := extractToken(request)
			if token == "" {
				next.ServeHTTP(writer, request)
				return
			}

			principal := resolve(request, verifier, resolver, token)
			if principal == nil {
				next.ServeHTTP(writer, request)
				return
			}

			reportIdentity(request.Context(), principal.AdminID)
			ctx := ctxutil.WithPrincipal(request.Context(), principal)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// resolve verifies the token and loads the principal, swallowing every failure.
func resolve(request *http.Request, verifier TokenVerifier, resolver PrincipalResolver, token string) (principal *sec.Principal) {
	ctx := request.Context()
	logger := ctxutil.GetLogger(ctx)

	defer func() {
		if recovered := recover(); recovered != nil {
			logger.WarnContext(ctx, "auth_resolution_panicked", slog.String("panic", fmt.Sprint(recovered)))
			principal = nil
		}
	}()

	claims, err := verifier.Verify(token)
	if err != nil {
		logger.DebugContext(ctx, "auth_token_rejected")
		return nil
	}

	principal, err = resolver.ResolvePrincipal(ctx, claims.Email())
	if err != nil {
		logger.WarnContext(ctx, "auth_principal_lookup_failed", slog.String("error", err.Error()))
		return nil
	}
	if principal == nil {
		logger.DebugContext(ctx, "auth_principal_unknown", slog.String("email", claims.Email()))
	}
	return principal
}

// extractToken prefers the session cookie and falls back to a Bearer header.
func extractToken(request *http.Request) string {
	if cookie, err := request.Cookie(constants.SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := request.Header.Get(constants.HeaderAuthorization)
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, constants.BearerScheme) {
		return ""
	}
	return strings.TrimSpace(token)
}
