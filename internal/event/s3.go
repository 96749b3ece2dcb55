package event

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/checkhealth/goals/internal/config"
	"github.com/checkhealth/goals/internal/storage"
	"github.com/google/uuid"
)

// S3Transport archives every payload as one JSON object, keyed
// <channel>/<yyyy>/<mm>/<dd>/<uuid>.json, for consumers that poll a bucket.
type S3Transport struct {
	store storage.Storage
	now   func() time.Time
}

func NewS3Transport(ctx context.Context, cfg storage.S3Config) (*S3Transport, error) {
	store, err := storage.NewS3Storage(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return newS3Transport(store), nil
}

func newS3Transport(store storage.Storage) *S3Transport {
	return &S3Transport{store: store, now: time.Now}
}

func (t *S3Transport) Send(ctx context.Context, channel, payload string) error {
	key := t.objectKey(channel)
	err := t.store.Save(ctx, key, "application/json", strings.NewReader(payload))
	if err != nil {
		return fmt.Errorf("archive %s: %w", key, err)
	}
	return nil
}

func (t *S3Transport) objectKey(channel string) string {
	return path.Join(channel, t.now().UTC().Format("2006/01/02"), uuid.New().String()+".json")
}

func (t *S3Transport) Close() error { return nil }

func (t *S3Transport) Name() string { return config.TransportS3 }
