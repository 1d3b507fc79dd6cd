package objects

import (
	"bytes"
	"fmt"
	"strings"
)

// Commit is a snapshot in history: a root tree, its parents and who made it.
//
// Payload layout:
//
//	tree <hash>
//	parent <hash>        (zero or more)
//	author <person>
//	committer <person>
//
//	<message>
type Commit struct {
	Tree      ObjectHash
	Parents   []ObjectHash
	Author    *Person
	Committer *Person
	Message   string
}

// Type returns the object type
func (c *Commit) Type() ObjectType {
	return CommitType
}

// Validate checks that all required fields are present
func (c *Commit) Validate() error {
	if c.Tree == "" {
		return fmt.Errorf("tree is required")
	}
	if err := c.Tree.Validate(); err != nil {
		return fmt.Errorf("invalid tree: %w", err)
	}
	for _, p := range c.Parents {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("invalid parent: %w", err)
		}
	}
	if c.Author == nil {
		return fmt.Errorf("author is required")
	}
	if err := c.Author.Validate(); err != nil {
		return fmt.Errorf("invalid author: %w", err)
	}
	if c.Committer == nil {
		return fmt.Errorf("committer is required")
	}
	if err := c.Committer.Validate(); err != nil {
		return fmt.Errorf("invalid committer: %w", err)
	}
	return nil
}

// Serialize encodes the commit. It refuses when the tree, author or
// committer is missing.
func (c *Commit) Serialize() ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, refuse(CommitType, "%v", err)
	}

	var buf strings.Builder
	writeHeader(&buf, "tree", strings.ToLower(c.Tree.String()))
	for _, p := range c.Parents {
		writeHeader(&buf, "parent", strings.ToLower(p.String()))
	}
	writeHeader(&buf, "author", c.Author.Format())
	writeHeader(&buf, "committer", c.Committer.Format())
	buf.WriteString("\n")
	buf.WriteString(c.Message)

	return []byte(buf.String()), nil
}

// DeserializeCommit parses a commit payload. Headers must appear once each,
// in the order Serialize writes them.
func DeserializeCommit(payload []byte) (*Commit, error) {
	headers, message, err := splitHeaders(payload)
	if err != nil {
		return nil, malformed(CommitType, "%v", err)
	}

	r := &headerReader{headers: headers}
	c := &Commit{Message: message}

	value, err := r.require("tree")
	if err != nil {
		return nil, malformed(CommitType, "%v", err)
	}
	if c.Tree, err = parseHashValue(value); err != nil {
		return nil, malformed(CommitType, "tree: %v", err)
	}

	for {
		value, ok := r.take("parent")
		if !ok {
			break
		}
		p, err := parseHashValue(value)
		if err != nil {
			return nil, malformed(CommitType, "parent: %v", err)
		}
		c.Parents = append(c.Parents, p)
	}

	for _, field := range []struct {
		key string
		dst **Person
	}{{"author", &c.Author}, {"committer", &c.Committer}} {
		value, err := r.require(field.key)
		if err != nil {
			return nil, malformed(CommitType, "%v", err)
		}
		if *field.dst, err = ParsePerson(value); err != nil {
			return nil, malformed(CommitType, "%s: %v", field.key, err)
		}
	}

	if err := r.done(); err != nil {
		return nil, malformed(CommitType, "%v", err)
	}
	if err := c.Validate(); err != nil {
		return nil, malformed(CommitType, "%v", err)
	}
	return c, nil
}

func (*Commit) sealed() {}

// CommitBuilder provides a fluent interface for building commits
type CommitBuilder struct {
	commit *Commit
	errs   []error
}

// NewCommitBuilder creates a new CommitBuilder
func NewCommitBuilder() *CommitBuilder {
	return &CommitBuilder{commit: &Commit{}}
}

// Tree sets the tree for the commit
func (b *CommitBuilder) Tree(tree ObjectHash) *CommitBuilder {
	h, err := NewObjectHashFromString(tree.String())
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("invalid tree: %w", err))
	} else {
		b.commit.Tree = h
	}
	return b
}

// Parents appends parents to the commit
func (b *CommitBuilder) Parents(parents ...ObjectHash) *CommitBuilder {
	for _, p := range parents {
		h, err := NewObjectHashFromString(p.String())
		if err != nil {
			b.errs = append(b.errs, fmt.Errorf("invalid parent: %w", err))
			continue
		}
		b.commit.Parents = append(b.commit.Parents, h)
	}
	return b
}

// Author sets the author of the commit
func (b *CommitBuilder) Author(author *Person) *CommitBuilder {
	b.commit.Author = author
	return b
}

// Committer sets the committer of the commit
func (b *CommitBuilder) Committer(committer *Person) *CommitBuilder {
	b.commit.Committer = committer
	return b
}

// Message sets the commit message
func (b *CommitBuilder) Message(message string) *CommitBuilder {
	b.commit.Message = message
	return b
}

// Build creates the Commit, returning an error if validation fails
func (b *CommitBuilder) Build() (*Commit, error) {
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("commit builder errors: %v", b.errs)
	}
	if err := b.commit.Validate(); err != nil {
		return nil, err
	}
	return b.commit, nil
}

type header struct {
	key   string
	value string
}

// headerReader consumes parsed headers strictly in order.
type headerReader struct {
	headers []header
	pos     int
}

// take consumes the next header if it has the given key.
func (r *headerReader) take(key string) (string, bool) {
	if r.pos < len(r.headers) && r.headers[r.pos].key == key {
		r.pos++
		return r.headers[r.pos-1].value, true
	}
	return "", false
}

func (r *headerReader) require(key string) (string, error) {
	if value, ok := r.take(key); ok {
		return value, nil
	}
	if r.pos < len(r.headers) {
		return "", fmt.Errorf("expected %s header, found %q", key, r.headers[r.pos].key)
	}
	return "", fmt.Errorf("missing %s header", key)
}

// done fails when headers are left over: unknown, repeated or out of order.
func (r *headerReader) done() error {
	if r.pos < len(r.headers) {
		return fmt.Errorf("unexpected header %q", r.headers[r.pos].key)
	}
	return nil
}

func writeHeader(buf *strings.Builder, key, value string) {
	buf.WriteString(key)
	buf.WriteByte(' ')
	buf.WriteString(value)
	buf.WriteByte('\n')
}

// splitHeaders reads "key value" lines up to the first blank line and
// returns them with the message that follows.
func splitHeaders(payload []byte) ([]header, string, error) {
	var headers []header
	rest := payload

	for {
		nl := bytes.IndexByte(rest, '\n')
		if nl == -1 {
			return nil, "", fmt.Errorf("missing blank line after headers")
		}
		line := rest[:nl]
		rest = rest[nl+1:]

		if len(line) == 0 {
			return headers, string(rest), nil
		}
		if line[0] == ' ' {
			return nil, "", fmt.Errorf("continuation lines are not supported")
		}

		sp := bytes.IndexByte(line, ' ')
		if sp <= 0 {
			return nil, "", fmt.Errorf("malformed header line %q", line)
		}
		headers = append(headers, header{key: string(line[:sp]), value: string(line[sp+1:])})
	}
}
