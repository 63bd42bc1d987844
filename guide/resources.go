package guide

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed guides/*.json
var guideFS embed.FS

const resourceURIPrefix = "file://resources/travel_guides/"

// Resource describes one static travel guide document.
type Resource struct {
	URI         string
	Name        string
	Description string
	MIMEType    string
}

var resources = []Resource{
	{
		URI:         resourceURIPrefix + "austin.json",
		Name:        "Austin Travel Guide",
		Description: "Comprehensive travel guide for Austin, Texas",
		MIMEType:    "application/json",
	},
	{
		URI:         resourceURIPrefix + "san_francisco.json",
		Name:        "San Francisco Travel Guide",
		Description: "Comprehensive travel guide for San Francisco, California",
		MIMEType:    "application/json",
	},
	{
		URI:         resourceURIPrefix + "new_york.json",
		Name:        "New York Travel Guide",
		Description: "Comprehensive travel guide for New York City",
		MIMEType:    "application/json",
	},
}

// Resources lists the available travel guides in stable order.
func Resources() []Resource {
	out := make([]Resource, len(resources))
	copy(out, resources)
	return out
}

// ReadResource returns the content of a travel guide by its URI.
func ReadResource(uri string) (string, error) {
	name, ok := strings.CutPrefix(uri, resourceURIPrefix)
	if !ok || strings.Contains(name, "/") {
		return "", fmt.Errorf("guide: resource not found: %s", uri)
	}
	content, err := guideFS.ReadFile("guides/" + name)
	if err != nil {
		return "", fmt.Errorf("guide: resource not found: %s", uri)
	}
	return string(content), nil
}
