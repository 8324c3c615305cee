// Package docs serves the checked-in OpenAPI description of the HTTP API.
package docs

import _ "embed"

//go:embed openapi.json
var OpenAPISpec []byte
