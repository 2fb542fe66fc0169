package server

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const playerIDKey contextKey = "player_id"

/*
authenticate 驗證 Bearer token 並取得 player_id
  - 未設定任何 token 時，token 即為 player_id (開發模式)
*/
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		playerID := token
		if len(s.options.Tokens) > 0 {
			playerID, ok = s.options.Tokens[token]
			if !ok {
				writeMessage(w, http.StatusUnauthorized, "invalid bearer token")
				return
			}
		}

		ctx := context.WithValue(r.Context(), playerIDKey, playerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}

func PlayerIDFromContext(ctx context.Context) string {
	playerID, _ := ctx.Value(playerIDKey).(string)
	return playerID
}
