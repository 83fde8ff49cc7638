package tutil

import (
	"os"
	"strings"
)

// IsIntegrationTest reports whether tests that need a live backend should run.
func IsIntegrationTest() bool {
	testType := os.Getenv("ACTIVITIES_TEST")
	return strings.ToLower(testType) == "integration"
}

// BackendURL is the live backend integration tests run against.
func BackendURL() string {
	if u := os.Getenv("ACTIVITIES_API_URL"); u != "" {
		return u
	}

	return "http://localhost:8000"
}
