package config

import (
	"errors"
	"net/url"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	foundation "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
)

// Validate checks a defaulted configuration and returns a config-category error listing every problem.
func (c *Config) Validate() error {
	errs := validation.Errors{
		"site": validation.ValidateStruct(&c.Site,
			validation.Field(&c.Site.Title, validation.Required),
			validation.Field(&c.Site.URL, validation.Required, validation.By(absoluteURL)),
		),
		"build": validation.ValidateStruct(&c.Build,
			validation.Field(&c.Build.PostsDir, validation.Required),
			validation.Field(&c.Build.Theme, validation.Required),
			validation.Field(&c.Build.OutputDirFormat, validation.Required),
			validation.Field(&c.Build.PostsPerPage, validation.Min(1)),
			validation.Field(&c.Build.RecentPosts, validation.Min(1)),
			validation.Field(&c.Build.TopCategories, validation.Min(1)),
		),
		"source": validation.ValidateStruct(&c.Source,
			validation.Field(&c.Source.Depth, validation.Min(0)),
		),
		"source.retry": validation.ValidateStruct(&c.Source.Retry,
			validation.Field(&c.Source.Retry.Backoff,
				validation.In(RetryBackoffFixed, RetryBackoffLinear, RetryBackoffExponential)),
			validation.Field(&c.Source.Retry.Initial, validation.When(c.Source.Retry.Initial != "", validation.By(positiveDuration))),
			validation.Field(&c.Source.Retry.Max, validation.When(c.Source.Retry.Max != "", validation.By(positiveDuration))),
			validation.Field(&c.Source.Retry.MaxRetries, validation.Min(0)),
		),
		"preview": validation.ValidateStruct(&c.Preview,
			validation.Field(&c.Preview.Port, validation.Min(1), validation.Max(65535)),
		),
		"daemon": validation.ValidateStruct(&c.Daemon,
			validation.Field(&c.Daemon.Interval, validation.By(positiveDuration)),
		),
	}.Filter()
	if errs == nil {
		return nil
	}
	return foundation.WrapError(errs, foundation.CategoryConfig, "invalid configuration").Fatal().UserAction().Build()
}

func absoluteURL(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("must be an absolute URL")
	}
	return nil
}

func positiveDuration(value any) error {
	s, _ := value.(string)
	d, err := time.ParseDuration(s)
	if err != nil {
		return errors.New("must be a duration such as 30m or 1h")
	}
	if d <= 0 {
		return errors.New("must be positive")
	}
	return nil
}
