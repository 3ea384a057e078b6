package user

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/api/idtoken"
)

// IdentityVerifier checks an external identity token and returns who it belongs to.
type IdentityVerifier interface {
	Verify(ctx context.Context, rawToken string) (*GoogleIdentity, error)
}

type validateFunc func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

type googleVerifier struct {
	clientID string
	validate validateFunc
}

// NewGoogleVerifier validates signature, expiry, issuer and audience against clientID.
func NewGoogleVerifier(clientID string) IdentityVerifier {
	return &googleVerifier{clientID: clientID, validate: idtoken.Validate}
}

func (v *googleVerifier) Verify(ctx context.Context, rawToken string) (*GoogleIdentity, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return nil, errors.New("id token is empty")
	}
	if v.clientID == "" {
		return nil, errors.New("google client id is not configured")
	}

	payload, err := v.validate(ctx, rawToken, v.clientID)
	if err != nil {
		return nil, err
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	if payload.Subject == "" || email == "" {
		return nil, errors.New("id token is missing subject or email")
	}
	if name == "" {
		name = email
	}

	return &GoogleIdentity{Subject: payload.Subject, Email: email, Name: name}, nil
}
