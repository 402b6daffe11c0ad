package util

import "strings"

// ShortClusterName trims a cloud resource ARN down to the cluster name.
// Kubeconfigs written by `aws eks update-kubeconfig` name clusters by ARN,
// e.g. arn:aws:eks:region:account:cluster/name. Other names are returned
// unchanged.
func ShortClusterName(name string) string {
	if !strings.HasPrefix(name, "arn:") {
		return name
	}
	if _, after, ok := strings.Cut(name, "cluster/"); ok && after != "" {
		return after
	}
	if i := strings.LastIndexAny(name, "/:"); i != -1 {
		return name[i+1:]
	}
	return name
}
