package extraction

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	// PowerElement is the element that references a power in a character document
	PowerElement = "Power"
	// NameAttribute carries the power's name on a PowerElement
	NameAttribute = "name"
)

// ExtractPowerNames stream-parses a character document and returns the value of the
// name attribute of every Power element, in document order. Duplicates are kept.
// Power elements without a name attribute are skipped. When an element carries
// several name attributes the first one wins.
func ExtractPowerNames(r io.Reader) ([]string, error) {
	decoder := xml.NewDecoder(r)
	names := make([]string, 0)

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &MalformedInputError{
				Message: "failed to parse document",
				Cause:   err,
			}
		}

		start, ok := token.(xml.StartElement)
		if !ok || start.Name.Local != PowerElement {
			continue
		}
		if name, found := firstAttr(start, NameAttribute); found {
			names = append(names, name)
		}
	}

	return names, nil
}

// ExtractPowerNamesFromFile opens path and extracts its power names.
func ExtractPowerNamesFromFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open character file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	names, err := ExtractPowerNames(file)
	if err != nil {
		var malformed *MalformedInputError
		if errors.As(err, &malformed) {
			malformed.Path = path
		}
		return nil, err
	}
	return names, nil
}

// firstAttr returns the first unqualified attribute with the given local name.
func firstAttr(start xml.StartElement, local string) (string, bool) {
	for _, attr := range start.Attr {
		if attr.Name.Space == "" && attr.Name.Local == local {
			return attr.Value, true
		}
	}
	return "", false
}
