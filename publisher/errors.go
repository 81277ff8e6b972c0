package publisher

import "fmt"

// PublishError reports a failed final publish. It is fatal to the job.
type PublishError struct {
	StatusCode int
	Status     string
	Err        error
}

func (e *PublishError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to post to WordPress: %v", e.Err)
	}
	return fmt.Sprintf("failed to post to WordPress (%s). Check if the site URL is valid or if the credentials are correct", e.Status)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}
