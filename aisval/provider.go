// Package aisval contains the values exchanged with the cluster: buckets, object properties and listings.
package aisval

import (
	"fmt"
	"strings"
)

// Provider represents the backend provider of a bucket.
type Provider string

const (
	// ProviderAIS is the native provider i.e. buckets stored by the cluster itself.
	ProviderAIS Provider = "ais"

	// ProviderAmazon is the Amazon S3 backend.
	ProviderAmazon Provider = "aws"

	// ProviderGoogle is the Google Cloud Storage backend.
	ProviderGoogle Provider = "gcp"

	// ProviderAzure is the Microsoft Azure Blob Storage backend.
	ProviderAzure Provider = "azure"

	// ProviderHDFS is the Hadoop Distributed File System backend.
	ProviderHDFS Provider = "hdfs"

	// ProviderHTTP is the HTTP(S) backend, used to fetch objects from arbitrary URLs.
	ProviderHTTP Provider = "ht"
)

// Providers is every supported provider.
var Providers = []Provider{ProviderAIS, ProviderAmazon, ProviderGoogle, ProviderAzure, ProviderHDFS, ProviderHTTP}

// ParseProvider converts the given string into a provider, accepting the common aliases e.g. 's3' or 'gs'. An empty
// string yields the native provider.
func ParseProvider(s string) (Provider, error) {
	switch strings.ToLower(s) {
	case "", "ais":
		return ProviderAIS, nil
	case "aws", "s3":
		return ProviderAmazon, nil
	case "gcp", "gs":
		return ProviderGoogle, nil
	case "azure", "az":
		return ProviderAzure, nil
	case "hdfs":
		return ProviderHDFS, nil
	case "ht":
		return ProviderHTTP, nil
	}

	return "", fmt.Errorf("%w '%s'", ErrUnknownProvider, s)
}

// String returns the provider as sent to the cluster, the zero value is the native provider.
func (p Provider) String() string {
	if p == "" {
		return string(ProviderAIS)
	}

	return string(p)
}

// IsRemote returns a boolean indicating whether buckets of this provider are backed by another storage service.
func (p Provider) IsRemote() bool {
	return p.String() != string(ProviderAIS)
}
