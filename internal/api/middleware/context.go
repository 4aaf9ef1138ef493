package middleware

import (
	"context"

	"github.com/m04kA/SMC-TestDriveService/internal/domain"
)

type ctxKey struct{}

// WithActor кладет пользователя запроса в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, ctxKey{}, actor)
}

// GetActor возвращает пользователя, установленного middleware Auth
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(ctxKey{}).(domain.Actor)
	if !ok || !actor.IsAuthenticated() {
		return domain.Actor{}, false
	}
	return actor, true
}
