package notify_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/UnknownOlympus/geotourist/internal/models"
	"github.com/UnknownOlympus/geotourist/internal/notify"
	"github.com/UnknownOlympus/geotourist/test/mocks"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const channel = "geotourist:test"

func museum() models.Presentation {
	return models.Present(models.NearbyResult{
		Point:    models.PointOfInterest{ID: 7, Name: "Museum", Latitude: 50.45, Longitude: 30.52},
		Distance: 120.6,
	})
}

func decode(t *testing.T, payload any) notify.Message {
	t.Helper()

	raw, ok := payload.([]byte)
	require.True(t, ok, "payload must be encoded JSON")

	var msg notify.Message
	require.NoError(t, json.Unmarshal(raw, &msg))
	return msg
}

func TestWholeMeters(t *testing.T) {
	assert.Equal(t, int64(0), notify.WholeMeters(0))
	assert.Equal(t, int64(121), notify.WholeMeters(120.6))
	assert.Equal(t, int64(120), notify.WholeMeters(120.4))
	assert.Equal(t, int64(1), notify.WholeMeters(0.5))
}

func TestMulti_FansOutInOrder(t *testing.T) {
	ctx := context.Background()
	first := mocks.NewNotifier(t)
	second := mocks.NewNotifier(t)
	locErr := models.LocationError{Kind: models.LocationErrorAccessDenied}

	var order []string
	first.On("Present", ctx, museum()).Run(func(mock.Arguments) { order = append(order, "first") }).Once()
	second.On("Present", ctx, museum()).Run(func(mock.Arguments) { order = append(order, "second") }).Once()
	first.On("LocationError", ctx, locErr).Once()
	second.On("LocationError", ctx, locErr).Once()

	multi := notify.Multi{first, second}
	multi.Present(ctx, museum())
	multi.LocationError(ctx, locErr)

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestMulti_Empty(t *testing.T) {
	assert.NotPanics(t, func() {
		notify.Multi{}.Present(context.Background(), models.NoNearbyPoints())
	})
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	notifier := notify.NewLogNotifier(log)

	notifier.Present(context.Background(), museum())
	assert.Contains(t, buf.String(), "Presenting point")
	assert.Contains(t, buf.String(), "distance_m=121")

	buf.Reset()
	notifier.Present(context.Background(), models.NoNearbyPoints())
	assert.Contains(t, buf.String(), "No nearby points")

	buf.Reset()
	notifier.LocationError(context.Background(), models.LocationError{Kind: models.LocationErrorClosed})
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), `message="Position source closed"`)
}

func TestRedisNotifier_Present(t *testing.T) {
	ctx := context.Background()
	publisher := mocks.NewPublisher(t)
	notifier := notify.NewRedisNotifier(publisher, channel, slog.New(slog.DiscardHandler))

	publisher.On("Publish", ctx, channel, mock.Anything).
		Run(func(args mock.Arguments) {
			msg := decode(t, args.Get(2))
			assert.Equal(t, notify.MessagePresentation, msg.Type)
			require.NotNil(t, msg.Presentation)
			require.True(t, msg.Presentation.HasPoint())
			assert.Equal(t, int64(7), msg.Presentation.Result.Point.ID)
			assert.InDelta(t, 120.6, msg.Presentation.Result.Distance, 1e-9)
			assert.Nil(t, msg.Error)
		}).
		Return(redis.NewIntResult(1, nil)).Once()

	notifier.Present(ctx, museum())
}

func TestRedisNotifier_PointFieldNames(t *testing.T) {
	ctx := context.Background()
	publisher := mocks.NewPublisher(t)
	notifier := notify.NewRedisNotifier(publisher, channel, slog.New(slog.DiscardHandler))

	presentation := museum()
	presentation.Result.Point.ImagePath = "images/museum.jpg"

	publisher.On("Publish", ctx, channel, mock.Anything).
		Run(func(args mock.Arguments) {
			raw, ok := args.Get(2).([]byte)
			require.True(t, ok)

			var envelope struct {
				Presentation struct {
					Result struct {
						Point map[string]any `json:"point"`
					} `json:"result"`
				} `json:"presentation"`
			}
			require.NoError(t, json.Unmarshal(raw, &envelope))

			point := envelope.Presentation.Result.Point
			assert.InDelta(t, 7.0, point["id"], 0)
			assert.Equal(t, "Museum", point["name"])
			assert.Equal(t, "images/museum.jpg", point["image_path"])
			assert.NotContains(t, point, "ID")
			assert.NotContains(t, point, "ImagePath")
		}).
		Return(redis.NewIntResult(1, nil)).Once()

	notifier.Present(ctx, presentation)
}

func TestRedisNotifier_NoNearbyPoints(t *testing.T) {
	ctx := context.Background()
	publisher := mocks.NewPublisher(t)
	notifier := notify.NewRedisNotifier(publisher, channel, slog.New(slog.DiscardHandler))

	publisher.On("Publish", ctx, channel, mock.Anything).
		Run(func(args mock.Arguments) {
			msg := decode(t, args.Get(2))
			require.NotNil(t, msg.Presentation)
			assert.False(t, msg.Presentation.HasPoint())
		}).
		Return(redis.NewIntResult(0, nil)).Once()

	notifier.Present(ctx, models.NoNearbyPoints())
}

func TestRedisNotifier_LocationError(t *testing.T) {
	ctx := context.Background()
	publisher := mocks.NewPublisher(t)
	notifier := notify.NewRedisNotifier(publisher, channel, slog.New(slog.DiscardHandler))

	publisher.On("Publish", ctx, channel, mock.Anything).
		Run(func(args mock.Arguments) {
			msg := decode(t, args.Get(2))
			assert.Equal(t, notify.MessageLocationError, msg.Type)
			require.NotNil(t, msg.Error)
			assert.Equal(t, models.LocationErrorUnavailable, msg.Error.Kind)
			assert.Equal(t, "Position source not available", msg.Error.Message)
			assert.Nil(t, msg.Presentation)
		}).
		Return(redis.NewIntResult(1, nil)).Once()

	notifier.LocationError(ctx, models.LocationError{Kind: models.LocationErrorUnavailable})
}

func TestRedisNotifier_PublishFailureIsLogged(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	publisher := mocks.NewPublisher(t)
	notifier := notify.NewRedisNotifier(publisher, channel, slog.New(slog.NewTextHandler(&buf, nil)))

	publisher.On("Publish", ctx, channel, mock.Anything).
		Return(redis.NewIntResult(0, errors.New("connection refused"))).Once()

	assert.NotPanics(t, func() { notifier.Present(ctx, museum()) })
	assert.Contains(t, buf.String(), "Failed to publish notification")
	assert.Contains(t, buf.String(), "connection refused")
}

func TestOpenRedis(t *testing.T) {
	assert.Nil(t, notify.OpenRedis("", ""))

	client := notify.OpenRedis("localhost:6379", "secret")
	require.NotNil(t, client)
	t.Cleanup(func() { _ = client.Close() })
	assert.Equal(t, "localhost:6379", client.Options().Addr)
}
