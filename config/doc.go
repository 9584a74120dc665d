// SPDX-License-Identifier: MIT

// Package config assembles the run configuration.
//
// Precedence, lowest first: Default, the YAML file, variables from .env,
// ITEMNET_* environment variables, command-line flags (applied by the
// caller). Every key of the file has an environment name: ITEMNET_ followed
// by the upper-cased key with dots turned into underscores, e.g.
// embedding.api_key becomes ITEMNET_EMBEDDING_API_KEY. OPENAI_API_KEY is
// honoured when no key is configured.
//
// Validate checks ranges and names once everything is merged; the
// *Options helpers translate a valid Config into package options.
package config
