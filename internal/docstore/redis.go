package docstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/2beens/gymlog/internal/gymstats/document"
	"github.com/2beens/gymlog/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const revisionKeySuffix = "::revision"

// RedisStore keeps the document as a JSON string under one key. A second
// key holds a counter bumped on every write, which is what Set watches.
type RedisStore struct {
	rdb *redis.Client
	key string
}

func NewRedisStore(rdb *redis.Client, key string) *RedisStore {
	if key == "" {
		key = document.DefaultKey
	}
	return &RedisStore{
		rdb: rdb,
		key: key,
	}
}

func (s *RedisStore) revisionKey() string {
	return s.key + revisionKeySuffix
}

func (s *RedisStore) Get(ctx context.Context) (_ *document.Document, _ Revision, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "docstore.redis.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	// both keys in one round trip, so the pair is consistent
	vals, err := s.rdb.MGet(ctx, s.key, s.revisionKey()).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: get document: %w", ErrUnavailable, err)
	}

	rev, err := parseRevision(vals[1])
	if err != nil {
		return nil, 0, fmt.Errorf("parse revision: %w", err)
	}
	span.SetAttributes(attribute.Int64("document.revision", int64(rev)))

	raw, ok := vals[0].(string)
	if !ok {
		doc, err := s.seed(ctx)
		if err != nil {
			return nil, 0, err
		}
		return doc, rev, nil
	}

	doc, err := document.Decode([]byte(raw))
	if err != nil {
		return nil, 0, err
	}
	return doc, rev, nil
}

func (s *RedisStore) seed(ctx context.Context) (*document.Document, error) {
	seed := document.Seed()
	data, err := document.Encode(seed)
	if err != nil {
		return nil, err
	}

	created, err := s.rdb.SetNX(ctx, s.key, string(data), 0).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: seed document: %w", ErrUnavailable, err)
	}
	if created {
		log.Infof("document store: seeded empty key [%s]", s.key)
		return seed, nil
	}

	// lost the race against another seeder, take what it wrote
	stored, err := s.rdb.Get(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: get seeded document: %w", ErrUnavailable, err)
	}
	return document.Decode([]byte(stored))
}

func (s *RedisStore) Set(ctx context.Context, doc *document.Document, expected Revision) (_ Revision, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "docstore.redis.set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	data, err := document.Encode(doc)
	if err != nil {
		return 0, err
	}

	var newRev Revision
	err = s.rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, s.revisionKey()).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if expected != AnyRevision && Revision(current) != expected {
			return ErrVersionConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.key, string(data), 0)
			pipe.Set(ctx, s.revisionKey(), current+1, 0)
			return nil
		})
		if err != nil {
			return err
		}

		newRev = Revision(current + 1)
		return nil
	}, s.revisionKey())

	switch {
	case err == nil:
		span.SetAttributes(attribute.Int64("document.revision", int64(newRev)))
		return newRev, nil
	case errors.Is(err, ErrVersionConflict), errors.Is(err, redis.TxFailedErr):
		return 0, ErrVersionConflict
	default:
		return 0, fmt.Errorf("%w: set document: %w", ErrUnavailable, err)
	}
}

func parseRevision(val interface{}) (Revision, error) {
	if val == nil {
		return 0, nil
	}
	s, ok := val.(string)
	if !ok {
		return 0, fmt.Errorf("unexpected revision value type %T", val)
	}
	rev, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return Revision(rev), nil
}
