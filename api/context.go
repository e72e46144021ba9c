package api

import (
	"context"
	"errors"
)

type keyType string

const identityKey keyType = "identity"

// ctxWithIdentity adds a resolved identity to the context
func ctxWithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// ctxGetIdentity retrieves the resolved identity from the context
func ctxGetIdentity(ctx context.Context) (Identity, error) {
	ctxValue := ctx.Value(identityKey)
	if ctxValue == nil {
		return Identity{}, errors.New("no identity in context")
	}
	identity, ok := ctxValue.(Identity)
	if !ok {
		return Identity{}, errors.New("identity value has unexpected type")
	}
	return identity, nil
}
