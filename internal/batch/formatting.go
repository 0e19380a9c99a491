package batch

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// FormatSummary renders a short human-readable batch summary.
func FormatSummary(res *Result) (string, error) {
	if res == nil {
		return "", errors.New("nil batch result")
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Processed %d file(s) in %s with %d worker(s)\n",
		len(res.Files), res.Duration.Round(1e6), res.WorkerCount)
	fmt.Fprintf(&sb, "  faces found: %d\n", res.Detected)
	fmt.Fprintf(&sb, "  no detection: %d\n", res.NoDetection)
	if res.Failed > 0 {
		fmt.Fprintf(&sb, "  failed: %d\n", res.Failed)
		for i := range res.Files {
			if res.Files[i].Err != nil {
				fmt.Fprintf(&sb, "    %s: %v\n", res.Files[i].Path, res.Files[i].Err)
			}
		}
	}
	return sb.String(), nil
}

// ToJSON serializes a batch result to pretty JSON.
func ToJSON(res *Result) (string, error) {
	if res == nil {
		return "", errors.New("nil batch result")
	}
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
