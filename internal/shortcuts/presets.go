package shortcuts

import (
	"sort"

	"cutdesk/internal/domain"
)

// Preset names shipped with cutdesk.
const (
	PresetAvid     = "avid"
	PresetDefault  = domain.DefaultPresetName
	PresetPremiere = "premiere"
	PresetResolve  = "resolve"
)

// PresetTable holds presets by name.
type PresetTable map[string]domain.Preset

// Names returns the preset names in sorted order.
func (t PresetTable) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns a copy of the named preset.
func (t PresetTable) Get(name string) (domain.Preset, bool) {
	p, ok := t[name]
	if !ok {
		return domain.Preset{}, false
	}
	return clonePreset(p), true
}

// lookup avoids the copy on the resolution hot path.
func (t PresetTable) lookup(name, actionID string) (string, bool) {
	p, ok := t[name]
	if !ok {
		return "", false
	}
	return p.Lookup(actionID)
}

// DefaultPresets builds the shipped preset table. The default preset mirrors the catalog defaults;
// the others mimic the layouts of common editing suites.
func DefaultPresets() PresetTable {
	defaults := make(map[string]string, len(catalog))
	for _, spec := range catalog {
		defaults[spec.ID] = spec.Key
	}

	return PresetTable{
		PresetDefault: {
			Name:        PresetDefault,
			Description: "cutdesk defaults",
			Bindings:    defaults,
		},
		PresetPremiere: {
			Name:        PresetPremiere,
			Description: "Adobe Premiere Pro style",
			Bindings: map[string]string{
				"general.redo":            "Ctrl+Shift+z",
				"general.undo":            "Ctrl+z",
				"navigation.back10":       "Shift+ArrowLeft",
				"navigation.forward10":    "Shift+ArrowRight",
				"navigation.goToEnd":      "End",
				"navigation.goToStart":    "Home",
				"navigation.nextFrame":    "ArrowRight",
				"navigation.prevFrame":    "ArrowLeft",
				"playback.markIn":         "i",
				"playback.markOut":        "o",
				"playback.playPause":      "Space",
				"playback.shuttleForward": "l",
				"playback.shuttleReverse": "j",
				"playback.shuttleStop":    "k",
				"playback.toggleLoop":     "Ctrl+l",
			},
		},
		PresetResolve: {
			Name:        PresetResolve,
			Description: "DaVinci Resolve style",
			Bindings: map[string]string{
				"general.redo":            "Ctrl+Shift+z",
				"general.undo":            "Ctrl+z",
				"navigation.back10":       "Shift+ArrowLeft",
				"navigation.forward10":    "Shift+ArrowRight",
				"navigation.goToEnd":      "End",
				"navigation.goToStart":    "Home",
				"navigation.nextFrame":    "ArrowRight",
				"navigation.prevFrame":    "ArrowLeft",
				"playback.markIn":         "i",
				"playback.markOut":        "o",
				"playback.playPause":      "Space",
				"playback.shuttleForward": "l",
				"playback.shuttleReverse": "j",
				"playback.shuttleStop":    "k",
				"playback.toggleLoop":     "Ctrl+/",
				"review.flag":             "m",
			},
		},
		PresetAvid: {
			Name:        PresetAvid,
			Description: "Avid Media Composer style",
			Bindings: map[string]string{
				"general.undo":            "Ctrl+z",
				"general.redo":            "Ctrl+r",
				"navigation.back10":       "1",
				"navigation.forward10":    "2",
				"navigation.goToEnd":      "End",
				"navigation.goToStart":    "Home",
				"navigation.nextFrame":    "4",
				"navigation.prevFrame":    "3",
				"playback.markIn":         "e",
				"playback.markOut":        "r",
				"playback.playPause":      "5",
				"playback.shuttleForward": "l",
				"playback.shuttleReverse": "j",
				"playback.shuttleStop":    "k",
			},
		},
	}
}

func clonePreset(p domain.Preset) domain.Preset {
	bindings := make(map[string]string, len(p.Bindings))
	for id, key := range p.Bindings {
		bindings[id] = key
	}
	p.Bindings = bindings
	return p
}
