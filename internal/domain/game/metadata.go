package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
)

const (
	// PlaceholderUniqueID ships in the default gameinfo.cfg and must be replaced.
	// Every game installed on the same console needs its own ID.
	PlaceholderUniqueID = "000000"

	// uniqueIDLength is the number of hex characters makerom expects.
	uniqueIDLength = 6

	// metadataSection is the gameinfo.cfg section carrying game metadata.
	metadataSection = "metadata"
)

var (
	// ErrIncompleteMetadata is returned when required metadata fields are absent.
	ErrIncompleteMetadata = errors.New("incomplete metadata")
	// ErrPlaceholderUniqueID is returned when cia_id still holds the shipped default.
	ErrPlaceholderUniqueID = errors.New("set a unique ID")
	// ErrInvalidUniqueID is returned when cia_id is not a 6-character hex string.
	ErrInvalidUniqueID = errors.New("invalid unique ID")
)

// Metadata describes one game as declared in its gameinfo.cfg.
type Metadata struct {
	// UniqueID is the hex title ID fragment substituted into the RSF template.
	UniqueID string
	// Title is shown on the home menu.
	Title string
	// Author is shown on the home menu.
	Author string
	// Release is the optional release year.
	Release string
	// RTP is the optional runtime package variant code the game depends on.
	RTP string
}

// ReadMetadata parses a gameinfo.cfg file. Whitespace around `=` is ignored
// and unknown keys are tolerated; validation is a separate step.
func ReadMetadata(path string) (*Metadata, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}

	section := cfg.Section(metadataSection)

	return &Metadata{
		UniqueID: strings.TrimSpace(section.Key("cia_id").String()),
		Title:    strings.TrimSpace(section.Key("title").String()),
		Author:   strings.TrimSpace(section.Key("author").String()),
		Release:  strings.TrimSpace(section.Key("release").String()),
		RTP:      strings.TrimSpace(section.Key("rtp").String()),
	}, nil
}

// Validate checks that all required fields are present and the unique ID is usable.
func (m *Metadata) Validate() error {
	missing := make([]string, 0, 3)

	if m.UniqueID == "" {
		missing = append(missing, "cia_id")
	}

	if m.Title == "" {
		missing = append(missing, "title")
	}

	if m.Author == "" {
		missing = append(missing, "author")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncompleteMetadata, strings.Join(missing, ", "))
	}

	if m.UniqueID == PlaceholderUniqueID {
		return fmt.Errorf("cia_id %s is the shipped placeholder, %w", m.UniqueID, ErrPlaceholderUniqueID)
	}

	if len(m.UniqueID) != uniqueIDLength {
		return fmt.Errorf("%w: cia_id must be %d hex characters, got %q", ErrInvalidUniqueID, uniqueIDLength, m.UniqueID)
	}

	if _, err := strconv.ParseUint(m.UniqueID, 16, 32); err != nil {
		return fmt.Errorf("%w: cia_id %q is not hexadecimal", ErrInvalidUniqueID, m.UniqueID)
	}

	return nil
}
