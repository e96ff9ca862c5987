package zoho

import "encoding/json"

// tokenResponse is the accounts-server answer to a refresh-token grant
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	Error       string `json:"error"`
}

// recordEnvelope wraps record payloads the way the CRM v2 API expects:
// every create request and every search response carries a "data" array.
type recordEnvelope struct {
	Data []map[string]any `json:"data"`
}

// createResult is one element of the "data" array in a create response
type createResult struct {
	Code    string          `json:"code"`
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Details json.RawMessage `json:"details"`
}

type createResponse struct {
	Data []createResult `json:"data"`
}

type recordDetails struct {
	ID string `json:"id"`
}

// searchResponse is the answer of the record search API. An empty result
// set arrives as HTTP 204 with no body, not as an empty array.
type searchResponse struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}
