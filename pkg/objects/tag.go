package objects

import (
	"fmt"
	"strings"
)

// Tag is an annotated tag: a named, optionally signed-off pointer to another object.
//
// Payload layout:
//
//	object <hash>
//	type <object type>
//	tag <name>
//	tagger <person>      (optional)
//
//	<message>
type Tag struct {
	Object     ObjectHash
	ObjectType ObjectType
	Name       string
	Tagger     *Person
	Message    string
}

// Type returns the object type
func (t *Tag) Type() ObjectType {
	return TagType
}

// Validate checks that all required fields are present
func (t *Tag) Validate() error {
	if t.Object == "" {
		return fmt.Errorf("object is required")
	}
	if err := t.Object.Validate(); err != nil {
		return fmt.Errorf("invalid object: %w", err)
	}
	if !t.ObjectType.IsValid() {
		return fmt.Errorf("invalid target type %q", t.ObjectType)
	}
	if t.Name == "" || strings.ContainsAny(t.Name, "\n") {
		return fmt.Errorf("invalid tag name %q", t.Name)
	}
	if t.Tagger != nil {
		if err := t.Tagger.Validate(); err != nil {
			return fmt.Errorf("invalid tagger: %w", err)
		}
	}
	return nil
}

// Serialize encodes the tag. It refuses when the target object is missing.
func (t *Tag) Serialize() ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, refuse(TagType, "%v", err)
	}

	var buf strings.Builder
	writeHeader(&buf, "object", strings.ToLower(t.Object.String()))
	writeHeader(&buf, "type", t.ObjectType.String())
	writeHeader(&buf, "tag", t.Name)
	if t.Tagger != nil {
		writeHeader(&buf, "tagger", t.Tagger.Format())
	}
	buf.WriteString("\n")
	buf.WriteString(t.Message)

	return []byte(buf.String()), nil
}

// DeserializeTag parses a tag payload. Headers must appear once each, in
// the order Serialize writes them.
func DeserializeTag(payload []byte) (*Tag, error) {
	headers, message, err := splitHeaders(payload)
	if err != nil {
		return nil, malformed(TagType, "%v", err)
	}

	r := &headerReader{headers: headers}
	t := &Tag{Message: message}

	value, err := r.require("object")
	if err != nil {
		return nil, malformed(TagType, "%v", err)
	}
	if t.Object, err = parseHashValue(value); err != nil {
		return nil, malformed(TagType, "object: %v", err)
	}

	if value, err = r.require("type"); err != nil {
		return nil, malformed(TagType, "%v", err)
	}
	if t.ObjectType, err = ParseObjectType(value); err != nil {
		return nil, malformed(TagType, "type: %v", err)
	}

	if t.Name, err = r.require("tag"); err != nil {
		return nil, malformed(TagType, "%v", err)
	}

	if value, ok := r.take("tagger"); ok {
		if t.Tagger, err = ParsePerson(value); err != nil {
			return nil, malformed(TagType, "tagger: %v", err)
		}
	}

	if err := r.done(); err != nil {
		return nil, malformed(TagType, "%v", err)
	}
	if err := t.Validate(); err != nil {
		return nil, malformed(TagType, "%v", err)
	}
	return t, nil
}

func (*Tag) sealed() {}
