package activities

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// Catalog is the full set of activities at a point in time. It keeps the
// order the backend listed the activities in, which is the display order.
type Catalog struct {
	activities []Activity
	byName     map[string]int
}

func NewCatalog(activities ...Activity) *Catalog {
	c := &Catalog{byName: make(map[string]int)}
	for _, a := range activities {
		c.put(a)
	}

	return c
}

// put adds a, replacing an existing activity of the same name in place.
func (c *Catalog) put(a Activity) {
	if i, ok := c.byName[a.Name]; ok {
		c.activities[i] = a
		return
	}

	c.byName[a.Name] = len(c.activities)
	c.activities = append(c.activities, a)
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}

	return len(c.activities)
}

// Activities returns the activities in catalog order.
func (c *Catalog) Activities() []Activity {
	if c == nil {
		return nil
	}

	return append([]Activity(nil), c.activities...)
}

func (c *Catalog) Names() []string {
	var names []string
	for _, a := range c.Activities() {
		names = append(names, a.Name)
	}

	return names
}

func (c *Catalog) Get(name string) (Activity, bool) {
	if c == nil {
		return Activity{}, false
	}

	i, ok := c.byName[name]
	if !ok {
		return Activity{}, false
	}

	return c.activities[i], true
}

// UnmarshalJSON decodes a JSON object of name -> activity, preserving key order.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return errors.Wrap(err, "catalog")
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.Errorf("catalog: expected JSON object, got %v", tok)
	}

	*c = Catalog{byName: make(map[string]int)}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return errors.Wrap(err, "catalog")
		}

		name, ok := tok.(string)
		if !ok {
			return errors.Errorf("catalog: expected activity name, got %v", tok)
		}

		var a Activity
		if err := dec.Decode(&a); err != nil {
			return errors.Wrapf(err, "catalog: activity %q", name)
		}

		// Rendering walks the participants list, so an entry without one
		// fails the whole catalog.
		if a.Participants == nil {
			return errors.Errorf("catalog: activity %q has no participants list", name)
		}

		a.Name = name
		c.put(a)
	}

	if _, err := dec.Token(); err != nil {
		return errors.Wrap(err, "catalog")
	}

	return nil
}

// MarshalJSON encodes the catalog as a JSON object in catalog order.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, a := range c.Activities() {
		if i > 0 {
			b.WriteByte(',')
		}

		name, err := json.Marshal(a.Name)
		if err != nil {
			return nil, err
		}

		body, err := json.Marshal(a)
		if err != nil {
			return nil, err
		}

		b.Write(name)
		b.WriteByte(':')
		b.Write(body)
	}
	b.WriteByte('}')

	return b.Bytes(), nil
}
