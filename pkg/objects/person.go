package objects

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Person is the author, committer or tagger line of a commit or tag.
//
// Format: "Name <email> timestamp timezone"
// Example: "John Doe <john@example.com> 1609459200 +0000"
//
// A zero offset in a zone named "-0000" is written as "-0000".
type Person struct {
	Name  string
	Email string
	When  time.Time
}

// personPattern is the regex pattern for parsing the person format
var personPattern = regexp.MustCompile(`^(.+) <([^<>\n]*)> (0|[1-9]\d*) ([+-]\d{4})$`)

// NewPerson creates a new Person with validation
func NewPerson(name, email string, when time.Time) (*Person, error) {
	p := &Person{
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
		When:  when,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks that the person can be written on a single header line.
func (p *Person) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if strings.ContainsAny(p.Name, "<>\n") {
		return fmt.Errorf("invalid characters in name: %q", p.Name)
	}
	if strings.ContainsAny(p.Email, "<>\n") {
		return fmt.Errorf("invalid characters in email: %q", p.Email)
	}
	return nil
}

// Format renders the person as "Name <email> timestamp ±hhmm".
func (p *Person) Format() string {
	zone, offset := p.When.Zone()

	sign := "+"
	if offset < 0 || (offset == 0 && zone == negativeUTC) {
		sign = "-"
		offset = -offset
	}
	hours := offset / 3600
	minutes := (offset % 3600) / 60

	return fmt.Sprintf("%s <%s> %d %s%02d%02d",
		p.Name, p.Email, p.When.Unix(), sign, hours, minutes)
}

// ParsePerson parses person information from its header form.
func ParsePerson(s string) (*Person, error) {
	m := personPattern.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("invalid person format: %q", s)
	}

	timestamp, err := strconv.ParseInt(m[3], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp: %w", err)
	}

	location, err := parseTimezone(m[4])
	if err != nil {
		return nil, fmt.Errorf("invalid timezone: %w", err)
	}

	p := &Person{
		Name:  m[1],
		Email: m[2],
		When:  time.Unix(timestamp, 0).In(location),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Equal compares two Person instances, including the timezone offset.
func (p *Person) Equal(other *Person) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.Format() == other.Format()
}

// String returns a human-readable representation
func (p *Person) String() string {
	return fmt.Sprintf("%s <%s> at %s", p.Name, p.Email, p.When.Format(time.RFC3339))
}

// negativeUTC is the zone name kept for "-0000" so it survives a round trip.
const negativeUTC = "-0000"

// parseTimezone parses a "+0530" or "-0800" offset.
func parseTimezone(tz string) (*time.Location, error) {
	hours, err := strconv.Atoi(tz[1:3])
	if err != nil {
		return nil, err
	}
	minutes, err := strconv.Atoi(tz[3:5])
	if err != nil {
		return nil, err
	}
	if minutes >= 60 {
		return nil, fmt.Errorf("minutes out of range in %q", tz)
	}

	offset := hours*3600 + minutes*60
	if tz[0] == '-' {
		offset = -offset
	}
	return time.FixedZone(tz, offset), nil
}
