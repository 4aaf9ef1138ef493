package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TestDriveService/internal/api/handlers"
	"github.com/m04kA/SMC-TestDriveService/internal/domain"
)

const (
	msgMissingToken = "требуется авторизация"
	msgInvalidToken = "недействительный токен"
	msgAdminOnly    = "доступ только для администратора"
)

var (
	errInvalidSubject = errors.New("invalid subject claim")
	errInvalidRole    = errors.New("invalid role claim")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Claims токен выпускается сервисом идентификации: sub - ID пользователя, role - USER или ADMIN
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Auth проверяет Bearer токен (HS256) и кладет domain.Actor в контекст запроса.
// Пустой issuer отключает проверку iss.
func Auth(secret, issuer string, logger Logger) mux.MiddlewareFunc {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	parser := jwt.NewParser(opts...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			actor, err := parseActor(parser, raw, secret)
			if err != nil {
				logger.Warn("Auth: %s %s - rejected token: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// RequireAdmin пропускает только администраторов. Ставится после Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := GetActor(r.Context())
		if !ok {
			handlers.RespondUnauthorized(w, msgMissingToken)
			return
		}
		if !actor.IsAdmin() {
			handlers.RespondForbidden(w, msgAdminOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if len(header) < 7 || !strings.EqualFold(header[:7], "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(header[7:])
	return token, token != ""
}

func parseActor(parser *jwt.Parser, raw, secret string) (domain.Actor, error) {
	claims := &Claims{}
	if _, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}); err != nil {
		return domain.Actor{}, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil || userID == uuid.Nil {
		return domain.Actor{}, fmt.Errorf("%w: %q", errInvalidSubject, claims.Subject)
	}

	role := domain.Role(strings.ToUpper(strings.TrimSpace(claims.Role)))
	switch role {
	case "":
		role = domain.RoleUser
	case domain.RoleUser, domain.RoleAdmin:
	default:
		return domain.Actor{}, fmt.Errorf("%w: %q", errInvalidRole, claims.Role)
	}

	return domain.Actor{UserID: userID, Role: role}, nil
}
