// Package model holds the request types shared by the server, the pipeline and the request log.
package model

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultWordCount is used when a request does not carry word_count.
const DefaultWordCount = 4000

// Credentials identifies a WordPress site and the account used to publish on it.
type Credentials struct {
	Username string
	Password string
	Site     string
}

// GenerationRequest is the inbound article request. It is not mutated after the job is scheduled.
type GenerationRequest struct {
	Username  string    `json:"username" validate:"required"`
	Password  string    `json:"password" validate:"required"`
	Topic     string    `json:"topic" validate:"required"`
	WordCount int       `json:"word_count"`
	Site      string    `json:"site" validate:"required"`
	CreatedAt time.Time `json:"-"`
}

var validate = validator.New()

// Validate checks that every required field is present.
func (r *GenerationRequest) Validate() error {
	return validate.Struct(r)
}

// Credentials returns the destination credentials carried by the request.
func (r GenerationRequest) Credentials() Credentials {
	return Credentials{Username: r.Username, Password: r.Password, Site: r.Site}
}
