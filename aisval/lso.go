package aisval

import "strings"

// Properties which may be requested for each entry of a listing.
const (
	GetPropsName     = "name"
	GetPropsSize     = "size"
	GetPropsChecksum = "checksum"
	GetPropsAtime    = "atime"
	GetPropsVersion  = "version"
	GetPropsLocation = "location"
	GetPropsCopies   = "copies"
)

// DefaultProps are the properties requested when none are given.
var DefaultProps = []string{GetPropsName, GetPropsSize}

// AllProps are all the properties which may be requested.
var AllProps = []string{
	GetPropsName,
	GetPropsSize,
	GetPropsChecksum,
	GetPropsAtime,
	GetPropsVersion,
	GetPropsLocation,
	GetPropsCopies,
}

// LsoMsg is the value of a 'list' action, requesting a single page of a listing.
type LsoMsg struct {
	// UUID identifies the listing session, empty for the first page.
	UUID string `json:"uuid"`

	// Props is a comma separated list of the properties to return for each entry.
	Props string `json:"props"`

	Prefix string `json:"prefix"`

	// ContinuationToken is returned in the previous page, empty for the first page.
	ContinuationToken string `json:"continuation_token"`

	// PageSize caps the number of entries, zero means the cluster's default.
	PageSize uint `json:"pagesize"`
}

// SetProps sets the requested properties, the name is always included.
func (m *LsoMsg) SetProps(props ...string) {
	if len(props) == 0 {
		props = DefaultProps
	}

	for _, prop := range props {
		if prop == GetPropsName {
			m.Props = strings.Join(props, ",")
			return
		}
	}

	m.Props = strings.Join(append([]string{GetPropsName}, props...), ",")
}

// WantProp returns a boolean indicating whether the given property was requested.
func (m *LsoMsg) WantProp(prop string) bool {
	for _, p := range strings.Split(m.Props, ",") {
		if p == prop {
			return true
		}
	}

	return false
}

// LsoEntry is a single object in a listing, only the requested properties are populated.
type LsoEntry struct {
	Name     string `json:"name"`
	Checksum string `json:"checksum,omitempty"`
	Atime    string `json:"atime,omitempty"`
	Version  string `json:"version,omitempty"`
	Location string `json:"location,omitempty"`
	Size     int64  `json:"size,string,omitempty"`
	Copies   int16  `json:"copies,omitempty"`
	Flags    uint16 `json:"flags,omitempty"`
}

// LsoResult is a single page of a listing.
type LsoResult struct {
	UUID string `json:"uuid"`

	// ContinuationToken is empty once the listing is complete.
	ContinuationToken string `json:"continuation_token"`

	Entries []*LsoEntry `json:"entries"`
	Flags   uint32      `json:"flags"`
}
