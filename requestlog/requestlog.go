// Package requestlog persists every accepted generation request in an append-only audit log.
package requestlog

import (
	"context"
	_ "embed"
	"fmt"

	"auto_wordpress_article_publisher/model"
)

//go:embed schema.sql
var schemaSQL string

// Drivers accepted by Open.
const (
	DriverJSON     = "json"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Record is one logged request. The WordPress password is deliberately absent.
type Record struct {
	TrackingID string `json:"trackingId"`
	Username   string `json:"username"`
	Topic      string `json:"topic"`
	WordCount  int    `json:"wordCount"`
	Site       string `json:"site"`
	Timestamp  int64  `json:"timestamp"`
}

// NewRecord builds the log entry for an accepted request.
func NewRecord(trackingID string, req model.GenerationRequest) Record {
	return Record{
		TrackingID: trackingID,
		Username:   req.Username,
		Topic:      req.Topic,
		WordCount:  req.WordCount,
		Site:       req.Site,
		Timestamp:  req.CreatedAt.UnixMilli(),
	}
}

// Store is an append-only request log.
type Store interface {
	Append(ctx context.Context, rec Record) error
	List(ctx context.Context) ([]Record, error)
	Close() error
}

// Open returns the store for driver. path is used by the json and sqlite drivers, dsn by postgres.
func Open(ctx context.Context, driver, path, dsn string) (Store, error) {
	switch driver {
	case "", DriverJSON:
		return NewJSONFileStore(path), nil
	case DriverSQLite:
		return OpenSQLite(ctx, path)
	case DriverPostgres:
		return OpenPostgres(ctx, dsn)
	default:
		return nil, fmt.Errorf("request log driver %q not supported", driver)
	}
}
