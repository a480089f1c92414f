package result

import (
	"context"
	"os"
	"testing"
)

// TestResultIntegration_FetchTermList connects to the live result portal.
// If this fails, the portal might be down or changed its JSON structure.
func TestResultIntegration_FetchTermList(t *testing.T) {
	if os.Getenv("RESULTCTL_INTEGRATION") != "1" {
		t.Skip("set RESULTCTL_INTEGRATION=1 to run against the live API")
	}

	client := NewClient(ClientOpts{BaseURL: os.Getenv("RESULTCTL_API_URL")})

	terms, err := client.FetchTermList(context.Background())
	if err != nil {
		t.Fatalf("Failed to fetch semester list: %v", err)
	}

	if len(terms) == 0 {
		t.Fatalf("Expected semesters from API, got 0")
	}

	for _, term := range terms {
		if term.SemesterID == "" {
			t.Errorf("Semester %q has no id", term.Label())
		}
	}
}
