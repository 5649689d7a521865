package models

// ResultContent is the "rcn" request parameter.
type ResultContent int

const (
	ResultContentNothing          ResultContent = 0
	ResultContentAttributes       ResultContent = 1
	ResultContentChildReferences  ResultContent = 6
	ResultContentChildResources   ResultContent = 8
	ResultContentDiscoveryResults ResultContent = 11
)

// FilterUsageDiscovery marks a RETRIEVE as a discovery request ("fu=1").
const FilterUsageDiscovery = 1

// Request is a transport-independent oneM2M request primitive.
type Request struct {
	// Operation is the requested operation.
	Operation Operation

	// To is the target address with the leading slash removed, e.g.
	// "cse-in/NoiseCancellationSystem" or "cnt3471963".
	To string

	// Originator is the X-M2M-Origin value.
	Originator string

	// RequestID is the X-M2M-RI value echoed in the response.
	RequestID string

	// ReleaseVersion is the X-M2M-RVI value.
	ReleaseVersion string

	// ResourceType is set for CREATE requests from the Content-Type ty
	// parameter.
	ResourceType ResourceType

	// Content is the raw primitive content.
	Content []byte

	// ResultContent is the requested rcn. Zero value means the operation
	// default.
	ResultContent *ResultContent

	// FilterCriteria holds the discovery filter parameters.
	FilterCriteria FilterCriteria
}

// FilterCriteria restricts discovery results.
type FilterCriteria struct {
	FilterUsage   int
	ResourceTypes []ResourceType
	Labels        []string
	Limit         int
	Level         int
}

// IsDiscovery reports whether the filter turns a RETRIEVE into a discovery.
func (f FilterCriteria) IsDiscovery() bool {
	return f.FilterUsage == FilterUsageDiscovery
}

// Response is the transport-independent answer to a Request.
type Response struct {
	StatusCode ResponseStatusCode
	RequestID  string
	// Content is marshalled as the response body when non-nil.
	Content any
}

// ChildReference is one entry of an m2m:rrl list.
type ChildReference struct {
	Name  string       `json:"nm"`
	Type  ResourceType `json:"typ"`
	Value string       `json:"val"`
}

// ChildReferenceList is the m2m:rrl response body.
type ChildReferenceList struct {
	References []ChildReference `json:"rrf"`
}

// DebugInfo is the m2m:dbg error body.
type DebugInfo struct {
	Message string `json:"m2m:dbg"`
}
