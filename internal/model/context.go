package model

import (
	"context"
)

type ContextManager interface {
	SetUserToContext(ctx context.Context, user PublicUser) context.Context
	GetUserFromContext(ctx context.Context) (PublicUser, bool)
}
