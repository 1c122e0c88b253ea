package llm

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/ledgerlens/internal/model"
)

// ErrNoJSON is returned when a response contains no JSON object.
var ErrNoJSON = errors.New("no JSON object in response")

// Image is a base64 payload with its MIME type.
type Image struct {
	MIME string
	Data string // base64, no data: prefix
}

// DataURL reassembles the data: URL form.
func (i Image) DataURL() string {
	return "data:" + i.MIME + ";base64," + i.Data
}

// Key identifies the image content for caching.
func (i Image) Key() string {
	sum := sha256.Sum256([]byte(i.Data))
	return hex.EncodeToString(sum[:])
}

// ParseDataURL splits a data: URL into MIME type and payload. A bare
// base64 string is accepted and assumed to be JPEG.
func ParseDataURL(s string) (Image, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Image{}, errors.New("empty image")
	}

	img := Image{MIME: "image/jpeg", Data: s}
	if header, payload, ok := strings.Cut(s, ","); ok {
		img.Data = payload
		if start := strings.Index(header, ":"); start >= 0 {
			mime := header[start+1:]
			if end := strings.Index(mime, ";"); end >= 0 {
				mime = mime[:end]
			}
			if mime != "" {
				img.MIME = mime
			}
		}
	}

	if img.Data == "" {
		return Image{}, errors.New("image payload is empty")
	}
	if _, err := base64.StdEncoding.DecodeString(img.Data); err != nil {
		return Image{}, fmt.Errorf("image payload is not base64: %w", err)
	}
	return img, nil
}

// ExtractJSON returns the outermost JSON object in content, ignoring any
// markdown fences or prose the model wrapped around it.
func ExtractJSON(content string) (string, error) {
	start := strings.Index(content, "{")
	if start < 0 {
		return "", ErrNoJSON
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(content); i++ {
		ch := content[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return content[start : i+1], nil
			}
		}
	}
	return "", ErrNoJSON
}

// rawAppraisal mirrors the JSON the model is asked to produce.
type rawAppraisal struct {
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	Room           string  `json:"room"`
	Type           string  `json:"type"`
	Description    string  `json:"description"`
	Condition      string  `json:"condition"`
	EstimatedValue float64 `json:"estimatedValue"`
}

// parseAppraisal decodes model output into an Appraisal. An unrecognized
// type is treated as personal property so the type never carries free text.
func parseAppraisal(content string) (Appraisal, error) {
	payload, err := ExtractJSON(content)
	if err != nil {
		return Appraisal{}, err
	}

	var raw rawAppraisal
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return Appraisal{}, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	name := strings.TrimSpace(raw.Name)
	if name == "" {
		return Appraisal{}, errors.New("no item name found in response")
	}

	itemType, err := model.ParseItemType(raw.Type)
	if err != nil {
		itemType = model.ItemTypePersonal
	}

	room := strings.TrimSpace(raw.Room)
	if room == "" {
		room = model.UnknownRoom
	}

	value := raw.EstimatedValue
	if value < 0 {
		value = 0
	}

	return Appraisal{
		Name:           name,
		Category:       model.ParseCategory(raw.Category),
		Room:           room,
		Type:           itemType,
		Condition:      model.ParseCondition(raw.Condition),
		Description:    strings.TrimSpace(raw.Description),
		EstimatedValue: value,
	}, nil
}
