package server

import (
	"context"
	"net/http"

	"github.com/claude/wodboard/internal/storage"
	"tailscale.com/client/tailscale/apitype"
)

type contextKey int

const (
	userIDKey contextKey = iota
	userInfoKey
)

// UserInfo is the identity behind a request.
type UserInfo struct {
	Login       string `json:"login"`
	DisplayName string `json:"display_name"`
}

var localUser = UserInfo{Login: "local", DisplayName: "Local Dev User"}

// WhoIser resolves a connection's remote address to its tailnet identity.
// The tsnet local client satisfies it.
type WhoIser interface {
	WhoIs(ctx context.Context, remoteAddr string) (*apitype.WhoIsResponse, error)
}

// DevIdentity attributes every request to the local dev user.
func DevIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		noteUser(r.Context(), storage.LocalUserID, localUser.Login)
		ctx := context.WithValue(r.Context(), userIDKey, storage.LocalUserID)
		ctx = context.WithValue(ctx, userInfoKey, localUser)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// identity resolves the tailnet user when tsnet is active and falls back
// to DevIdentity otherwise.
func (s *Server) identity(next http.Handler) http.Handler {
	dev := DevIdentity(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.whois == nil {
			dev.ServeHTTP(w, r)
			return
		}

		who, err := s.whois.WhoIs(r.Context(), r.RemoteAddr)
		if err != nil || who.UserProfile == nil {
			s.log.Warn("whois failed", "remote", r.RemoteAddr, "error", err)
			writeJSON(w, http.StatusForbidden, map[string]string{"error": "unknown tailnet identity"})
			return
		}

		info := UserInfo{Login: who.UserProfile.LoginName, DisplayName: who.UserProfile.DisplayName}
		id, err := s.store.GetOrCreateUser(r.Context(), info.Login, info.DisplayName)
		if err != nil {
			s.log.Error("resolving user", "login", info.Login, "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "resolving user"})
			return
		}

		noteUser(r.Context(), id, info.Login)
		ctx := context.WithValue(r.Context(), userIDKey, id)
		ctx = context.WithValue(ctx, userInfoKey, info)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userIDFromContext returns the request's user ID, or the local user when
// no identity middleware ran.
func userIDFromContext(r *http.Request) int {
	if id, ok := r.Context().Value(userIDKey).(int); ok {
		return id
	}
	return storage.LocalUserID
}

func userInfoFromContext(r *http.Request) UserInfo {
	if info, ok := r.Context().Value(userInfoKey).(UserInfo); ok {
		return info
	}
	return localUser
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userInfoFromContext(r))
}
