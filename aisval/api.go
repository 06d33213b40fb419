package aisval

const (
	// URLPathBuckets is the root of the bucket API.
	URLPathBuckets = "/v1/buckets"

	// URLPathObjects is the root of the object API.
	URLPathObjects = "/v1/objects"
)

const (
	// QparamProvider selects the provider of the bucket in the request path.
	QparamProvider = "provider"
)

const (
	ActCreateBck  = "create-bck"
	ActDestroyBck = "destroy-bck"
	ActList       = "list"
)

// Headers returned by the cluster, in their canonical form.
const (
	HeaderVersion       = "Ais-Version"
	HeaderChecksumType  = "Ais-Checksum-Type"
	HeaderChecksumValue = "Ais-Checksum-Value"
	HeaderAtime         = "Ais-Atime"
	HeaderObjSize       = "Ais-Size"
	HeaderBucketProps   = "Ais-Bucket-Props"
	HeaderContentLength = "Content-Length"
	HeaderRange         = "Range"
)

// ActionMsg is the body of any request which asks the cluster to perform an action.
type ActionMsg struct {
	Action string `json:"action"`
	Name   string `json:"name,omitempty"`
	Value  any    `json:"value,omitempty"`
}

// Error is the payload returned by the cluster when a request fails.
type Error struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Method  string `json:"method,omitempty"`
	URLPath string `json:"url_path,omitempty"`
}
