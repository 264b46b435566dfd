package topology

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"gopkg.in/yaml.v3"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrConfigInvalid is returned when a skeleton topology is missing, empty,
// malformed or references a joint index that can not exist
var ErrConfigInvalid = errors.New("invalid skeleton topology")

// Format of a serialized topology document
type Format int

const (
	JSON Format = 1
	YAML Format = 2
)

// BoneLink defines a bone drawn between two joints.  From and To are indexes
// into a pose's body parts.
type BoneLink struct {
	From int `json:"from" yaml:"from"`
	To   int `json:"to" yaml:"to"`
}

// document is the serialized form of a topology
type document struct {
	BodyPartConnections []BoneLink `json:"bodyPartConnections" yaml:"bodyPartConnections"`
}

// Topology is the ordered list of bone links shared by all poses.  It is not
// modified after creation.
type Topology struct {
	links []BoneLink
	// jointCount is the highest referenced joint index plus one
	jointCount int
}

// New returns a Topology for the given links
func New(links []BoneLink) (*Topology, error) {

	if len(links) == 0 {
		return nil, fmt.Errorf("%w: no bone links", ErrConfigInvalid)
	}

	t := &Topology{
		links: make([]BoneLink, len(links)),
	}

	copy(t.links, links)

	for i, l := range t.links {
		if l.From < 0 || l.To < 0 {
			return nil, fmt.Errorf("%w: bone %d has negative joint index (%d,%d)",
				ErrConfigInvalid, i, l.From, l.To)
		}

		if l.From >= t.jointCount {
			t.jointCount = l.From + 1
		}
		if l.To >= t.jointCount {
			t.jointCount = l.To + 1
		}
	}

	return t, nil
}

// Parse reads a topology document in the given format
func Parse(data []byte, format Format) (*Topology, error) {

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: source is empty", ErrConfigInvalid)
	}

	var doc document
	var err error

	switch format {
	case JSON:
		err = json.Unmarshal(data, &doc)
	case YAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("%w: unknown format %d", ErrConfigInvalid, format)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}

	return New(doc.BodyPartConnections)
}

// Load reads a topology document from r
func Load(r io.Reader, format Format) (*Topology, error) {

	data, err := io.ReadAll(r)

	if err != nil {
		return nil, fmt.Errorf("%w: error reading source: %w", ErrConfigInvalid, err)
	}

	return Parse(data, format)
}

// LoadFile reads a topology document from file, the format is chosen by the
// file extension (.json, .yaml or .yml)
func LoadFile(file string) (*Topology, error) {

	var format Format

	switch strings.ToLower(filepath.Ext(file)) {
	case ".json":
		format = JSON
	case ".yaml", ".yml":
		format = YAML
	default:
		return nil, fmt.Errorf("%w: unsupported file type %q", ErrConfigInvalid, file)
	}

	data, err := os.ReadFile(file)

	if err != nil {
		return nil, fmt.Errorf("%w: error opening file: %w", ErrConfigInvalid, err)
	}

	return Parse(data, format)
}

// Len returns the number of bone links
func (t *Topology) Len() int {
	return len(t.links)
}

// Link returns the i-th bone link
func (t *Topology) Link(i int) BoneLink {
	return t.links[i]
}

// Links returns a copy of all bone links
func (t *Topology) Links() []BoneLink {
	out := make([]BoneLink, len(t.links))
	copy(out, t.links)
	return out
}

// JointCount returns the minimum number of joints a pose needs for every
// bone link to reference an existing joint
func (t *Topology) JointCount() int {
	return t.jointCount
}

// Validate checks every bone link references a joint below jointCount
func (t *Topology) Validate(jointCount int) error {

	for i, l := range t.links {
		if l.From >= jointCount || l.To >= jointCount {
			return fmt.Errorf("%w: bone %d (%d,%d) exceeds joint count %d",
				ErrConfigInvalid, i, l.From, l.To, jointCount)
		}
	}

	return nil
}
