package util

import "testing"

func TestShortClusterName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "EKS ARN", input: "arn:aws:eks:us-east-1:123456789012:cluster/grid-prod", expected: "grid-prod"},
		{name: "GovCloud ARN", input: "arn:aws-us-gov:eks:us-gov-east-1:144418179842:cluster/grid-gov", expected: "grid-gov"},
		{name: "other ARN with path", input: "arn:aws:iam::123456789012:role/admin", expected: "admin"},
		{name: "ARN without path", input: "arn:aws:eks:us-east-1:123456789012:grid", expected: "grid"},
		{name: "plain name", input: "grid", expected: "grid"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShortClusterName(tt.input); got != tt.expected {
				t.Errorf("ShortClusterName(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
