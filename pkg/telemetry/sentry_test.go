package telemetry

import (
	"testing"

	"github.com/getsentry/sentry-go"

	"github.com/ghuser/lostfound/pkg/config"
)

func TestSentryOptions(t *testing.T) {
	opts := sentryOptions(&config.Config{
		ServiceName:    "lostfound",
		ServiceVersion: "1.4.0",
		Environment:    config.EnvProduction,
		SentryDSN:      "https://key@sentry.example.com/1",
	})

	if opts.Release != "lostfound@1.4.0" {
		t.Errorf("Release = %q", opts.Release)
	}
	if opts.Tags["context"] != "listing" || opts.Tags["service"] != "lostfound" {
		t.Errorf("unexpected tags: %v", opts.Tags)
	}
	if opts.SendDefaultPII {
		t.Error("PII must not be sent")
	}
	if opts.BeforeSend == nil {
		t.Fatal("expected a BeforeSend scrubber")
	}
}

func TestScrubEvent(t *testing.T) {
	tests := []struct {
		name  string
		event *sentry.Event
	}{
		{"no request", &sentry.Event{}},
		{"listing draft", &sentry.Event{Request: &sentry.Request{
			URL:     "http://localhost:8080/api/listings",
			Method:  "POST",
			Data:    `{"contact_info":"owner@email.com"}`,
			Cookies: "lostfound_visitor=abc",
			Headers: map[string]string{"Cookie": "lostfound_visitor=abc", "Accept": "application/json"},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scrubEvent(tt.event, nil)
			if got == nil {
				t.Fatal("event must not be dropped")
			}
			if got.Request == nil {
				return
			}
			if got.Request.Data != "" || got.Request.Cookies != "" {
				t.Errorf("request body or cookies kept: %+v", got.Request)
			}
			if _, ok := got.Request.Headers["Cookie"]; ok {
				t.Error("Cookie header kept")
			}
			if got.Request.Headers["Accept"] != "application/json" || got.Request.URL == "" {
				t.Error("non-sensitive request fields must survive")
			}
		})
	}
}
