package formwizard

import (
	"net/url"

	"github.com/xraph/formwizard/form"
)

// Request is the narrow view of an incoming request consumed by the
// controllers. Host adapters (see the web package) build one from
// their framework's request type; the core never touches the HTTP
// machinery directly.
type Request struct {
	// Method is the HTTP method, "GET" or "POST".
	Method string

	// Step is the step address carried in the request path for the
	// named-URL variant, "" when absent.
	Step string

	// Query is the parsed query string.
	Query url.Values

	// Form is the submitted field values (POST only).
	Form form.Values

	// Files is the uploaded file references (POST only), already
	// persisted into the controller's FileStorage by the adapter.
	Files form.Files
}

// Response is the host-defined response representation produced by the
// Renderer and Redirector capabilities. The core hands it back to the
// caller without inspecting it.
type Response = any

// Wire field names read from the POST payload.
const (
	// GoToStepField names a step to jump to, bypassing validation of
	// the step being left.
	GoToStepField = "wizard_goto_step"

	// ManagementField carries the signed marker asserting which step
	// the client believes is current.
	ManagementField = "wizard_management"
)
