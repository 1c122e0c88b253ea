// Package llm appraises item photos with a vision-capable language model.
// It supports Gemini, Anthropic and OpenAI over their HTTP APIs, with a
// per-image result cache and rate limiting. Failed requests are never
// retried automatically.
package llm
