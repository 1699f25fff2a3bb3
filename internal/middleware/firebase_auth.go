package middleware

import (
	"context"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/curious/backend/internal/models"
)

// IDTokenVerifier is the part of the Firebase auth client used here
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseUserLookup finds the local account linked to a Firebase UID
type FirebaseUserLookup interface {
	GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error)
}

// FirebaseTokenParser accepts Firebase ID tokens of users that already
// signed in once through the firebase login route.
func FirebaseTokenParser(verifier IDTokenVerifier, users FirebaseUserLookup) TokenParser {
	return func(ctx context.Context, idToken string) (*models.JwtCustomClaims, error) {
		token, err := verifier.VerifyIDToken(ctx, idToken)
		if err != nil {
			return nil, err
		}
		user, err := users.GetUserByFirebaseUID(ctx, token.UID)
		if err != nil {
			return nil, err
		}
		return &models.JwtCustomClaims{
			UserID:   user.ID,
			Username: user.Username,
			Email:    user.Email,
		}, nil
	}
}
