// Package flow implements the registration and login use cases: shape
// validation of caller intent, delegation to the authentication service,
// and translation of results into the uniform response envelope.
package flow

// Outcome is the envelope returned by both use cases. The success flag and
// the operation result are the same boolean; Token is populated only by the
// login path.
type Outcome struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Token      string `json:"token,omitempty"`
}
