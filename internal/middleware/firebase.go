package middleware

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/config"
	"google.golang.org/api/option"
)

// InitFirebaseAuth builds the Firebase Auth client used to verify federated ID tokens.
// The private key is expected base64 encoded.
func InitFirebaseAuth(ctx context.Context, cfg config.FirebaseConfig) (*auth.Client, error) {
	privateKey, err := base64.StdEncoding.DecodeString(cfg.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode firebase private key: %w", err)
	}

	credentials, err := json.Marshal(map[string]interface{}{
		"type":         "service_account",
		"project_id":   cfg.ProjectID,
		"private_key":  string(privateKey),
		"client_email": cfg.ClientEmail,
	})
	if err != nil {
		return nil, err
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, option.WithCredentialsJSON(credentials))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth client: %w", err)
	}
	return client, nil
}
