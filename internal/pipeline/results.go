package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/facekit/facekit/internal/detector"
	"github.com/facekit/facekit/internal/landmark"
)

// Result is the outcome of a successful detection: the face box in
// source-image coordinates plus the derived alignment guides. A run that
// finds no face yields no Result at all rather than a zero value.
type Result struct {
	Face       detector.FaceBox   `json:"face"                 yaml:"face"`
	Landmarks  landmark.Landmarks `json:"landmarks"            yaml:"landmarks"`
	Width      int                `json:"width"                yaml:"width"`
	Height     int                `json:"height"               yaml:"height"`
	Backend    string             `json:"backend"              yaml:"backend"`
	Processing struct {
		TotalNs int64 `json:"total_ns" yaml:"total_ns"`
	} `json:"processing" yaml:"processing"`
}

// Output formats supported by ToFormat.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
)

// ToJSON serializes a result to pretty JSON.
func ToJSON(res *Result) (string, error) {
	if res == nil {
		return "", errors.New("nil result")
	}
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ToYAML serializes a result to YAML.
func ToYAML(res *Result) (string, error) {
	if res == nil {
		return "", errors.New("nil result")
	}
	b, err := yaml.Marshal(res)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ToPlainText renders a short human-readable summary.
func ToPlainText(res *Result) (string, error) {
	if res == nil {
		return "", errors.New("nil result")
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "face: x=%.1f y=%.1f %.1fx%.1f\n",
		res.Face.X, res.Face.Y, res.Face.Width, res.Face.Height)
	fmt.Fprintf(&sb, "eye line: %.2f%% of image height\n", res.Landmarks.EyeLineY)
	fmt.Fprintf(&sb, "chin:     %.2f%% of image height\n", res.Landmarks.ChinY)
	fmt.Fprintf(&sb, "backend:  %s\n", res.Backend)
	return sb.String(), nil
}

// ToFormat dispatches on the output format name.
func ToFormat(res *Result, format string) (string, error) {
	switch format {
	case FormatYAML:
		return ToYAML(res)
	case FormatText:
		return ToPlainText(res)
	case FormatJSON, "":
		return ToJSON(res)
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}

// ValidateResult performs simple consistency checks.
func ValidateResult(res *Result) error {
	if res == nil {
		return errors.New("nil result")
	}
	if res.Width <= 0 || res.Height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", res.Width, res.Height)
	}
	if res.Face.Width <= 0 || res.Face.Height <= 0 {
		return errors.New("face box has non-positive size")
	}
	if res.Landmarks.EyeLineY > res.Landmarks.ChinY {
		return errors.New("eye line below chin line")
	}
	return nil
}
