package config

import (
	"fmt"
	"net/url"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	switch c.LLM.Provider {
	case "mistral", "openai":
		if c.LLM.APIKey == "" {
			errors = append(errors, ValidationError{
				Field:   "llm.api_key",
				Message: fmt.Sprintf("api key is required for provider %s", c.LLM.Provider),
			})
		}
	case "ollama", "mock":
	default:
		errors = append(errors, ValidationError{
			Field:   "llm.provider",
			Message: fmt.Sprintf("unsupported provider %q", c.LLM.Provider),
		})
	}

	if c.LLM.Model == "" {
		errors = append(errors, ValidationError{
			Field:   "llm.model",
			Message: "model is required",
		})
	}

	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		errors = append(errors, ValidationError{
			Field:   "llm.temperature",
			Message: "temperature must be between 0 and 2",
		})
	}

	if c.LLM.Timeout < 0 {
		errors = append(errors, ValidationError{
			Field:   "llm.timeout",
			Message: "timeout cannot be negative",
		})
	}

	if c.LLM.BaseURL != "" {
		if u, err := url.Parse(c.LLM.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			errors = append(errors, ValidationError{
				Field:   "llm.base_url",
				Message: "invalid base URL",
			})
		}
	}

	if c.Server.PublicBaseURL != "" {
		if u, err := url.Parse(c.Server.PublicBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			errors = append(errors, ValidationError{
				Field:   "server.public_base_url",
				Message: "invalid public base URL",
			})
		}
	}

	if c.Server.RateLimit < 0 {
		errors = append(errors, ValidationError{
			Field:   "server.rate_limit",
			Message: "rate_limit cannot be negative",
		})
	}

	if c.Output.Dir == "" {
		errors = append(errors, ValidationError{
			Field:   "output.dir",
			Message: "output directory is required",
		})
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		errors = append(errors, ValidationError{
			Field:   "log.format",
			Message: "format must be text or json",
		})
	}

	return errors
}
