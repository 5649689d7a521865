package models

import "time"

// Collection is an ordered set of provisioning requests issued against a CSE.
type Collection struct {
	Name     string
	Vars     map[string]string
	Requests []CollectionRequest
}

// CollectionRequest is a single templated oneM2M request of a collection.
type CollectionRequest struct {
	Name       string
	Method     string
	Path       string
	Originator string
	// ResourceType is sent as the ty parameter of the Content-Type header on
	// POST requests. Zero means no ty parameter.
	ResourceType ResourceType
	Headers      map[string]string
	// Body is the JSON request body after YAML decoding. It may contain
	// {{var}} placeholders in any string value.
	Body any
	// ExpectStatus lists the accepted HTTP statuses. Empty means any 2xx.
	ExpectStatus []int
	// Extract maps variable names to JSONPath expressions evaluated on the
	// response body.
	Extract map[string]string
}

// CollectionResult reports the outcome of one executed request.
type CollectionResult struct {
	Name       string
	Method     string
	URL        string
	StatusCode int
	RSC        string
	Duration   time.Duration
	Extracted  map[string]string
	Err        error
}

// CollectionRun aggregates the results of a collection run.
type CollectionRun struct {
	Collection string
	Results    []CollectionResult
	Vars       map[string]string
}

// Failed reports whether any executed request failed.
func (r CollectionRun) Failed() bool {
	for _, res := range r.Results {
		if res.Err != nil {
			return true
		}
	}
	return false
}
