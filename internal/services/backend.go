package services

//go:generate mockgen -source=backend.go -destination=mocks.go -package=services

import (
	"context"

	"github.com/segmentio/kafka-go"

	"github.com/sbilibin2017/eduai-platform/internal/models"
)

// SessionBackend stores profiles and ledgers for one family of users.
type SessionBackend interface {
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	SaveProfile(ctx context.Context, u *models.User) (*models.User, error)
	AddCompletion(ctx context.Context, userID string, tutorialID int) (bool, error)
	Completions(ctx context.Context, userID string) ([]models.Completion, error)
	AppendUsage(ctx context.Context, userID, tool string, data map[string]any) (*models.UsageSession, error)
	Usage(ctx context.Context, userID string) ([]models.UsageSession, error)
	Forget(ctx context.Context, userID string) error
}

// DeviceStore is the per-device key-value storage holding session records.
type DeviceStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// HostedAuth is the hosted identity provider.
type HostedAuth interface {
	SignInWithPassword(ctx context.Context, email, password string) (*models.HostedGrant, error)
	SignUp(ctx context.Context, email, password string, metadata map[string]any) (*models.HostedGrant, error)
	AuthorizeURL(provider models.Provider, state, codeChallenge string) (string, error)
	ExchangeCode(ctx context.Context, code, codeVerifier string) (*models.HostedGrant, error)
	GetUser(ctx context.Context, accessToken string) (*models.HostedIdentity, error)
	SignOut(ctx context.Context, accessToken string) error
}

// UsagePublisher forwards usage events to downstream consumers.
type UsagePublisher interface {
	PublishUsage(ctx context.Context, s *models.UsageSession)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}
