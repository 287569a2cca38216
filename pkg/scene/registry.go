package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownScene is returned when a scene name is not registered
var ErrUnknownScene = errors.New("unknown scene")

// Builder constructs a fresh scene
type Builder func() *Scene

// SceneInfo describes a registered scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"`
	Group       string `json:"group"` // Grouping category
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

type entry struct {
	info  SceneInfo
	build Builder
}

const (
	groupBook = "Book Scenes"
	groupTest = "Test Scenes"
)

var registry = []entry{
	{SceneInfo{ID: "bouncing-spheres", Description: "Random field of moving, metal and glass spheres", Group: groupBook}, NewBouncingSpheres},
	{SceneInfo{ID: "checkered-spheres", Description: "Two spheres sharing a spatial checker texture", Group: groupBook}, NewCheckeredSpheres},
	{SceneInfo{ID: "earth", Description: "Image textured globe", Group: groupBook}, NewEarth},
	{SceneInfo{ID: "quads", Description: "Five colored quads", Group: groupBook}, NewQuads},
	{SceneInfo{ID: "simple-light", Description: "Checkered spheres lit by sphere and quad lights", Group: groupBook}, NewSimpleLight},
	{SceneInfo{ID: "cornell-box", Description: "Cornell box with two rotated blocks", Group: groupBook}, NewCornellBox},
	{SceneInfo{ID: "cornell-smoke", Description: "Cornell box with smoke blocks", Group: groupBook}, NewCornellSmoke},
	{SceneInfo{ID: "final-scene", Description: "Showcase of every primitive, material and medium", Group: groupBook}, NewFinalScene},
	{SceneInfo{ID: "emissive-sphere", Description: "Single light sphere on black", Group: groupTest}, NewEmissiveSphere},
}

func init() {
	for i := range registry {
		registry[i].info.DisplayName = titleCase(registry[i].info.ID)
	}
}

// List returns every registered scene in registration order
func List() []SceneInfo {
	scenes := make([]SceneInfo, len(registry))
	for i, e := range registry {
		scenes[i] = e.info
	}
	return scenes
}

// Lookup returns the builder registered under name
func Lookup(name string) (Builder, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, e := range registry {
		if e.info.ID == name {
			return e.build, true
		}
	}
	return nil, false
}

// Build constructs the named scene
func Build(name string) (*Scene, error) {
	build, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return build(), nil
}

// Groups returns the registered scenes grouped by category, book scenes first
// then the remaining groups alphabetically
func Groups() []SceneGroup {
	groupMap := make(map[string][]SceneInfo)
	for _, info := range List() {
		groupMap[info.Group] = append(groupMap[info.Group], info)
	}

	var groupNames []string
	for groupName := range groupMap {
		if groupName != groupBook {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	var groups []SceneGroup
	if book, exists := groupMap[groupBook]; exists {
		groups = append(groups, SceneGroup{Name: groupBook, Scenes: book})
	}
	for _, groupName := range groupNames {
		groups = append(groups, SceneGroup{Name: groupName, Scenes: groupMap[groupName]})
	}
	return groups
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-smoke" -> "Cornell Smoke"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
