package audit

import "context"

type userKey struct{}

// WithUser anexa o usuário autenticado ao contexto para os eventos disparados pelos casos de uso.
func WithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey{}, userID)
}

func UserFrom(ctx context.Context) string {
	id, _ := ctx.Value(userKey{}).(string)
	return id
}
