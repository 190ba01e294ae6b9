package restyutil

import (
	"fmt"

	"github.com/go-resty/resty/v2"
)

type StatusError struct {
	Method     string
	Url        string
	StatusCode int
	Status     string
}

func (e StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %s", e.Method, e.Url, e.Status)
}

// CheckStatus returns a StatusError for any response outside of 2xx.
func CheckStatus(res *resty.Response) error {
	if res.IsSuccess() {
		return nil
	}
	status := res.Status()
	if status == "" {
		status = fmt.Sprint(res.StatusCode())
	}
	return StatusError{
		Method:     res.Request.Method,
		Url:        res.Request.URL,
		StatusCode: res.StatusCode(),
		Status:     status,
	}
}
