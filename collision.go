package icongen

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCollision is matched by every Collision.
var ErrCollision = errors.New("identifier collision")

// Collision lists the asset files that would be written to the same
// generated file Output, usually because they derive the same identifier.
// Identifier is derived from the first of Files.
type Collision struct {
	Identifier string
	Output     string
	Files      []string
}

func (c Collision) Error() string {
	msg := fmt.Sprintf("%s: %q derived from %s", ErrCollision, c.Identifier, strings.Join(c.Files, ", "))
	if c.Output != "" {
		msg += " share " + c.Output
	}
	return msg
}

func (c Collision) Is(target error) bool {
	return target == ErrCollision
}

// FindCollisions groups assets by the file name output derives from their
// identifier and returns one Collision per file shared by more than one
// asset, ordered by first occurrence. A nil output groups by identifier.
func FindCollisions(assets []*Asset, output func(identifier string) string) []Collision {
	seen := make(map[string]int, len(assets))
	var collisions []Collision
	var groups []Collision
	for _, a := range assets {
		key := a.Identifier
		if output != nil {
			key = output(a.Identifier)
		}
		i, ok := seen[key]
		if !ok {
			seen[key] = len(groups)
			c := Collision{Identifier: a.Identifier, Files: []string{a.Name}}
			if output != nil {
				c.Output = key
			}
			groups = append(groups, c)
			continue
		}
		groups[i].Files = append(groups[i].Files, a.Name)
	}
	for _, c := range groups {
		if len(c.Files) > 1 {
			collisions = append(collisions, c)
		}
	}
	return collisions
}
