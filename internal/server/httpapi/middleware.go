package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/modelcatalog/internal/common"
	"github.com/dmitrijs2005/modelcatalog/internal/logging"
	"github.com/dmitrijs2005/modelcatalog/internal/server/auth"
)

type ctxKey string

const userIDKey ctxKey = "userID"

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthorizationHeader)
		token, ok := strings.CutPrefix(header, common.BearerPrefix)
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "missing token")
			return
		}

		userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
		if err != nil {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = logging.WithAttrs(ctx, "user", userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}
